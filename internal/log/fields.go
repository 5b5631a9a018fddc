package log

// Common field names for structured logging
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
	FieldTenantID      = "tenant_id"
	FieldUserID        = "user_id"
	FieldWalletID      = "wallet_id"
	FieldTransactionID = "transaction_id"
	FieldType          = "type"
	FieldCategory      = "category"
	FieldAmountCents   = "amount_cents"
	FieldBalanceCents  = "balance_cents"
	FieldFormat        = "format"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentLedger    = "ledger"
	ComponentWallet    = "wallet"
	ComponentReport    = "report"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpList     = "list"
	OpLogin    = "login"
	OpRecord   = "record"
	OpRender   = "render"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
