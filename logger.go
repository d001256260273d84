package gohooks

// discardLogger drops every message. Runtimes created without WithLogger use
// it, so views can log through Frame.Logger unconditionally.
type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}

// NewDefaultLogger returns the logger a Runtime uses when none is configured.
// It discards everything.
func NewDefaultLogger() Logger {
	return discardLogger{}
}

// scopedLogger prefixes every message with the path of the scope that logged
// it.
type scopedLogger struct {
	path   string
	logger Logger
}

func (l *scopedLogger) Debug(format string, args ...interface{}) {
	l.logger.Debug("[%s] "+format, l.with(args)...)
}

func (l *scopedLogger) Info(format string, args ...interface{}) {
	l.logger.Info("[%s] "+format, l.with(args)...)
}

func (l *scopedLogger) Warn(format string, args ...interface{}) {
	l.logger.Warn("[%s] "+format, l.with(args)...)
}

func (l *scopedLogger) Error(format string, args ...interface{}) {
	l.logger.Error("[%s] "+format, l.with(args)...)
}

func (l *scopedLogger) with(args []interface{}) []interface{} {
	return append([]interface{}{l.path}, args...)
}
