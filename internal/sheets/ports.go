package sheets

import (
	"context"
	"fmt"
)

// Credential is the opaque OAuth2 bearer token a client presents for the
// spreadsheet backend. It is threaded explicitly through every store call;
// nothing in this package holds a credential between requests.
type Credential string

// Store is the port every resource service talks through. Rows are returned
// as raw cell strings; all typed coercion happens in the caller (see
// ParseAmount for the tolerant numeric policy).
type Store interface {
	// Read returns the rows in readRange, or an empty slice when the range
	// holds no data. An empty result is never an error.
	Read(ctx context.Context, cred Credential, spreadsheetID, readRange string) ([][]string, error)

	// Append adds rows after the existing content of the target tab. It does
	// not check for duplicate identifiers.
	Append(ctx context.Context, cred Credential, spreadsheetID, writeRange string, rows [][]any) error

	// Update overwrites the cells at exactly writeRange. Used for header
	// provisioning only.
	Update(ctx context.Context, cred Credential, spreadsheetID, writeRange string, rows [][]any) error

	// Clear erases all values in clearRange without removing the tab,
	// implementing replace-whole-collection semantics.
	Clear(ctx context.Context, cred Credential, spreadsheetID, clearRange string) error

	// EnsureSchema provisions missing tabs and header rows. It is idempotent:
	// when everything already exists it performs no mutating calls. Returns
	// the names of tabs it created.
	EnsureSchema(ctx context.Context, cred Credential, spreadsheetID string) ([]string, error)
}

// StoreError wraps any failure from the spreadsheet backend (permission,
// quota, network, malformed range) with the operation and range it hit.
type StoreError struct {
	Op    string
	Range string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Range == "" {
		return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sheets %s %s: %v", e.Op, e.Range, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
