package log

// WithFields returns a Logger that prepends extra to every call's fields,
// without mutating logger. It is used to tag every event a single
// component instance emits with a fixed identity (an instance ID, a
// plugin name) without threading that field through every call site.
func WithFields(logger Logger, extra ...Field) Logger {
	return &fieldLogger{inner: logger, extra: extra}
}

type fieldLogger struct {
	inner Logger
	extra []Field
}

func (l *fieldLogger) Debug(msg string, fields ...Field) {
	l.inner.Debug(msg, l.merge(fields)...)
}

func (l *fieldLogger) Info(msg string, fields ...Field) {
	l.inner.Info(msg, l.merge(fields)...)
}

func (l *fieldLogger) Warn(msg string, fields ...Field) {
	l.inner.Warn(msg, l.merge(fields)...)
}

func (l *fieldLogger) Error(msg string, fields ...Field) {
	l.inner.Error(msg, l.merge(fields)...)
}

func (l *fieldLogger) merge(fields []Field) []Field {
	out := make([]Field, 0, len(l.extra)+len(fields))
	out = append(out, l.extra...)
	out = append(out, fields...)
	return out
}
