package core

// Logger is implemented by the app loggers.
// args may carry errors, maps of extra data and the session.Identity the message is about.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
