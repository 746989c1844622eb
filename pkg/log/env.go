package log

import (
	"sort"
	"strings"
	"time"
)

// An Env is the ambient logging environment: the current domain stack, the
// ordered data pairs accumulated by scoping, and the backend receiving
// messages. Envs are shared by reference within a call tree but never
// mutated: scoping operations derive a copy for the duration of the scoped
// computation, so the parent environment is intact whichever way that
// computation exits.
//
// Env is the base implementation of the Logger interface.
type Env struct {
	Backend Backend
	Domain  []string
	Data    Pairs
}

func DefaultLogger(name string) *Env {
	backendCfg := TerminalBackendCfg{
		Color: true,
	}

	return NewLoggerWithBackend(name, NewTerminalBackend(backendCfg))
}

func NewLoggerWithBackend(name string, backend Backend) *Env {
	env := Env{
		Backend: backend,
	}

	if name != "" {
		env.Domain = []string{name}
	}

	return &env
}

func (e *Env) LogMessage(level Level, text string, data Data) {
	e.emit(time.Now(), level, text, data)
}

func (e *Env) LocalData(pairs Pairs, fn func(Logger) error) error {
	return fn(e.child("", pairs))
}

func (e *Env) LocalDomain(name string, fn func(Logger) error) error {
	return fn(e.child(name, nil))
}

func (e *Env) LoggerEnv() *Env {
	return e.child("", nil)
}

// Child derives a long-lived sub-logger, e.g. for a subsystem created at
// startup. Unlike LocalDomain and LocalData, the derivation is not bracketed
// around a computation; the child simply lives as long as its holder keeps
// it. Data entries are appended in key order.
func (e *Env) Child(domain string, data Data) *Env {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make(Pairs, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Key: k, Value: data[k]}
	}

	return e.child(domain, pairs)
}

func (e *Env) child(domain string, pairs Pairs) *Env {
	child := Env{
		Backend: e.Backend,
	}

	child.Domain = make([]string, len(e.Domain), len(e.Domain)+1)
	copy(child.Domain, e.Domain)
	if domain != "" {
		child.Domain = append(child.Domain, domain)
	}

	child.Data = make(Pairs, len(e.Data), len(e.Data)+len(pairs))
	copy(child.Data, e.Data)
	child.Data = append(child.Data, pairs...)

	return &child
}

func (e *Env) emit(t time.Time, level Level, text string, data Data) {
	msg := Message{
		Time:   t.UTC(),
		Level:  level,
		Domain: strings.Join(e.Domain, "."),
		Text:   text,
		Data:   MergeData(e.Data.Fold(), data),
	}

	e.Backend.Log(msg)
}
