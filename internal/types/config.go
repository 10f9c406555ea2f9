package types

type RunMode string

const (
	// ModeLocal runs the front end against a developer API with debug defaults
	ModeLocal RunMode = "local"
	// ModeProduction runs the front end against the hosted API
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
