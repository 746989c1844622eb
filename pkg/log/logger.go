package log

import "fmt"

// Logger is the logging capability. Any value implementing it can emit
// leveled messages and scope the ambient environment for the duration of a
// computation.
//
// LocalData runs fn with an environment whose data is the ambient data with
// pairs appended; appended pairs win on key collision when messages are
// serialized. LocalDomain does the same with one more segment pushed onto
// the domain stack. Both return the error of fn unchanged: the capability
// layer defines no errors of its own, and it must not catch, wrap or
// suppress anything raised by fn, panics included. The ambient environment
// seen by the caller is unaffected on every exit path, since fn only ever
// receives a derived copy.
//
// LoggerEnv returns a snapshot of the ambient environment, suitable for
// building adapters such as GetLoggerIO. Calling it has no effect on the
// ambient state.
type Logger interface {
	LogMessage(level Level, text string, data Data)
	LocalData(pairs Pairs, fn func(Logger) error) error
	LocalDomain(name string, fn func(Logger) error) error
	LoggerEnv() *Env
}

func Trace(l Logger, format string, args ...interface{}) {
	l.LogMessage(LevelTrace, fmt.Sprintf(format, args...), Data{})
}

func TraceData(l Logger, data Data, format string, args ...interface{}) {
	l.LogMessage(LevelTrace, fmt.Sprintf(format, args...), data)
}

func Info(l Logger, format string, args ...interface{}) {
	l.LogMessage(LevelInfo, fmt.Sprintf(format, args...), Data{})
}

func InfoData(l Logger, data Data, format string, args ...interface{}) {
	l.LogMessage(LevelInfo, fmt.Sprintf(format, args...), data)
}

func Attention(l Logger, format string, args ...interface{}) {
	l.LogMessage(LevelAttention, fmt.Sprintf(format, args...), Data{})
}

func AttentionData(l Logger, data Data, format string, args ...interface{}) {
	l.LogMessage(LevelAttention, fmt.Sprintf(format, args...), data)
}
