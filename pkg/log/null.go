package log

// nullLogger discards everything. It is used by tests and by mocking
// harnesses that want a component's real behaviour without its log
// spam.
type nullLogger struct{}

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a Logger that discards everything.
func NewNullLogger() Logger {
	return nullLogger{}
}
