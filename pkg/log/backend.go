package log

type BackendType string

const (
	BackendTypeTerminal BackendType = "terminal"
	BackendTypeMemory   BackendType = "memory"
	BackendTypeFile     BackendType = "file"
)

// A Backend is the terminal consumer of messages. Level filtering is backend
// policy; the logging core passes every message through.
//
// A backend must be safe for concurrent Log calls if loggers bound to it are
// used from multiple goroutines; the core adds no synchronization of its
// own.
type Backend interface {
	Log(Message)
}
