package log

import (
	"bytes"
	stdlog "log"
	"strings"
	"time"
)

// A LoggerIO is a plain emission callback for foreign code which is not
// aware of the Logger capability, e.g. hooks of third party libraries. The
// supplied time is used as the message time.
type LoggerIO func(t time.Time, level Level, text string, data Data)

// GetLoggerIO extracts a callback bound to the ambient environment of l.
// The environment is captured at extraction time: scoping applied after the
// call does not affect messages emitted through the callback, and the
// callback stays valid for as long as the foreign code holds it.
func GetLoggerIO(l Logger) LoggerIO {
	env := l.LoggerEnv()

	return func(t time.Time, level Level, text string, data Data) {
		env.emit(t, level, text, data)
	}
}

// StdLogger builds a standard library logger emitting through l.
func StdLogger(l Logger, level Level) *stdlog.Logger {
	// The standard log package does not support log levels, so we have to
	// choose one to be used for all messages.
	//
	// Standard loggers use the io.Writer interface as sink, which does not
	// allow any parameter. We pass the level at the beginning of the message
	// followed by an ASCII unit separator.
	return stdlog.New(&stdWriter{logger: l}, string(level)+"\x1f", 0)
}

type stdWriter struct {
	logger Logger
}

func (w *stdWriter) Write(data []byte) (int, error) {
	level := LevelInfo
	msg := string(data)

	idx := bytes.IndexByte(data, 0x1f)
	if idx >= 0 {
		switch levelString := Level(data[:idx]); levelString {
		case LevelTrace, LevelInfo, LevelAttention:
			level = levelString
			msg = string(data[idx+1:])
		}
	}

	msg = strings.TrimSpace(msg)

	w.logger.LogMessage(level, msg, Data{})

	return len(data), nil
}
