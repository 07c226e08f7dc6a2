package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldMonth     = "month"
	FieldSheet     = "sheet"
	FieldFile      = "file"
	FieldRows      = "rows"
	FieldCount     = "count"
)

// ComponentApp tags records emitted by the application shell itself;
// packages pick their own name via WithComponent.
const ComponentApp = "app"
