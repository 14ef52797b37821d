package core

// Logger reports application events. Extra args may carry errors, maps of context
// values and the caller's identity.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the caller of a request in error reports.
type Person struct {
	ID    string
	Name  string
	Email string
}
