package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldSpreadsheetID = "spreadsheet_id"
	FieldRange         = "range"
	FieldUserID        = "user_id"
	FieldTxID          = "tx_id"
	FieldMonth         = "month"
	FieldPrincipal     = "principal"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentSheets    = "sheets"
	ComponentUsers     = "users"
	ComponentAccounts  = "accounts"
	ComponentCategory  = "categories"
	ComponentAlloc     = "allocation"
	ComponentLedger    = "ledger"
)
