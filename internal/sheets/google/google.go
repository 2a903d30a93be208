package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"combine/internal/cache"
	applog "combine/internal/log"
	"combine/internal/sheets"
)

// Client adapts the Google Sheets API to the sheets.Store port. It holds no
// credentials of its own: every call receives the caller's bearer token and
// the per-token service handles are memoized in a small LRU so repeated
// requests from the same session do not rebuild the API client.
type Client struct {
	services *cache.LRUCache[*gsheet.Service]
}

var _ sheets.Store = (*Client)(nil)

// New creates a Sheets store adapter.
func New() *Client {
	return &Client{
		services: cache.NewLRUCache[*gsheet.Service](64, 10*time.Minute),
	}
}

// service returns a Sheets API handle bound to the given credential.
func (c *Client) service(ctx context.Context, cred sheets.Credential) (*gsheet.Service, error) {
	key := credKey(cred)
	if svc, ok := c.services.Get(key); ok {
		return svc, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(cred)})
	svc, err := gsheet.NewService(ctx, goption.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	c.services.Set(key, svc)
	return svc, nil
}

// CleanExpired drops expired service handles. Satisfies cache.Cleaner so the
// entrypoint can register the client with the cleanup manager.
func (c *Client) CleanExpired() int {
	return c.services.CleanExpired()
}

// credKey digests the token so raw credentials never sit in cache keys.
func credKey(cred sheets.Credential) string {
	sum := sha256.Sum256([]byte(cred))
	return hex.EncodeToString(sum[:])
}

func (c *Client) Read(ctx context.Context, cred sheets.Credential, spreadsheetID, readRange string) ([][]string, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return nil, &sheets.StoreError{Op: "read", Range: readRange, Err: err}
	}
	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, &sheets.StoreError{Op: "read", Range: readRange, Err: err}
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStrings(row))
	}
	return rows, nil
}

func (c *Client) Append(ctx context.Context, cred sheets.Credential, spreadsheetID, writeRange string, rows [][]any) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return &sheets.StoreError{Op: "append", Range: writeRange, Err: err}
	}
	vr := &gsheet.ValueRange{Values: rows}
	_, err = svc.Spreadsheets.Values.Append(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return &sheets.StoreError{Op: "append", Range: writeRange, Err: err}
	}
	return nil
}

func (c *Client) Update(ctx context.Context, cred sheets.Credential, spreadsheetID, writeRange string, rows [][]any) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return &sheets.StoreError{Op: "update", Range: writeRange, Err: err}
	}
	vr := &gsheet.ValueRange{Values: rows}
	_, err = svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return &sheets.StoreError{Op: "update", Range: writeRange, Err: err}
	}
	return nil
}

func (c *Client) Clear(ctx context.Context, cred sheets.Credential, spreadsheetID, clearRange string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return &sheets.StoreError{Op: "clear", Range: clearRange, Err: err}
	}
	_, err = svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return &sheets.StoreError{Op: "clear", Range: clearRange, Err: err}
	}
	return nil
}

// EnsureSchema lists existing tabs, batch-creates the missing ones, and
// writes a header row into any required tab whose first row is still empty.
// Calling it again when everything exists performs no mutating calls.
func (c *Client) EnsureSchema(ctx context.Context, cred sheets.Credential, spreadsheetID string) ([]string, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return nil, &sheets.StoreError{Op: "ensure_schema", Err: err}
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, &sheets.StoreError{Op: "ensure_schema", Err: err}
	}
	existing := make(map[string]bool, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var created []string
	var reqs []*gsheet.Request
	for _, tab := range sheets.RequiredTabs() {
		if existing[tab] {
			continue
		}
		created = append(created, tab)
		reqs = append(reqs, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: tab,
					GridProperties: &gsheet.GridProperties{
						RowCount:    sheets.NewTabRows,
						ColumnCount: sheets.NewTabCols,
					},
				},
			},
		})
	}
	if len(reqs) > 0 {
		_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: reqs,
		}).Context(ctx).Do()
		if err != nil {
			return nil, &sheets.StoreError{Op: "ensure_schema", Err: err}
		}
		slog.InfoContext(ctx, "Created spreadsheet tabs",
			applog.FieldComponent, applog.ComponentSheets,
			applog.FieldSpreadsheetID, spreadsheetID,
			"tabs", created)
	}

	for _, tab := range sheets.RequiredTabs() {
		headerRange := tab + "!A1"
		resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, headerRange).Context(ctx).Do()
		if err != nil {
			return nil, &sheets.StoreError{Op: "ensure_schema", Range: headerRange, Err: err}
		}
		if len(resp.Values) > 0 {
			continue
		}
		header := sheets.HeaderRow(tab)
		row := make([]any, len(header))
		for i, h := range header {
			row[i] = h
		}
		if err := c.Update(ctx, cred, spreadsheetID, headerRange, [][]any{row}); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
