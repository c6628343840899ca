package contracts

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// DebugLevel indicates messages useful for troubleshooting.
	DebugLevel LogLevel = iota
	// InfoLevel indicates informational messages about normal progress.
	InfoLevel
	// WarnLevel indicates potentially harmful situations worth monitoring.
	WarnLevel
	// ErrorLevel indicates serious issues that need attention.
	ErrorLevel
)

// Field represents a structured log field of one of several data types.
// Each method returns a new Field carrying the key/value pair.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Int64(key string, val int64) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
	String(key string, val string) Field
	Error(key string, val error) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
}
