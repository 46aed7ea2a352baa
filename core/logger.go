package core

// UserID identifies the student a log entry relates to.
// Loggers that support it attach it to the reported item.
type UserID string

// Logger is any service that can log messages & errors.
// args may contain: error, map[string]interface{}, UserID
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
