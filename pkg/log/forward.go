package log

// Wrapper types holding an inner Logger become log-capable without bespoke
// scoping code. LogMessage and LoggerEnv delegate directly to the inner
// logger; LocalData and LocalDomain are implemented with the two functions
// below.
//
// The rewrap function rebuilds the wrapper around a rescoped inner logger,
// usually by copying the wrapper value and swapping its logger field. The
// copy carries the wrapper's state into the scoped run, the scoping applied
// at the inner level covers the whole of the wrapper's logic, and the
// original wrapper is untouched once the scope exits. Wrappers built this
// way stack to arbitrary depth.

func ForwardLocalData(inner Logger, rewrap func(Logger) Logger, pairs Pairs, fn func(Logger) error) error {
	return inner.LocalData(pairs, func(scoped Logger) error {
		return fn(rewrap(scoped))
	})
}

func ForwardLocalDomain(inner Logger, rewrap func(Logger) Logger, name string, fn func(Logger) error) error {
	return inner.LocalDomain(name, func(scoped Logger) error {
		return fn(rewrap(scoped))
	})
}
