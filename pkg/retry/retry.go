package retry

import (
	"time"

	"github.com/carlohamalainen/log/pkg/log"
)

type RetrierCfg struct {
	Log log.Logger `json:"-"`

	MaxAttempts  int `json:"max_attempts,omitempty"`
	InitialDelay int `json:"initial_delay,omitempty"` // milliseconds
	MaxDelay     int `json:"max_delay,omitempty"`     // milliseconds
}

// A Retrier runs operations with bounded retries and doubling delays. It is
// itself log-capable: messages and scoping applied to the retrier reach the
// logger it was built with.
type Retrier struct {
	Cfg RetrierCfg
	Log log.Logger
}

func NewRetrier(cfg RetrierCfg) *Retrier {
	if cfg.Log == nil {
		cfg.Log = log.DefaultLogger("retry")
	}

	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}

	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = 1000
	}

	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 30_000
	}

	return &Retrier{
		Cfg: cfg,
		Log: cfg.Log,
	}
}

// Do runs op until it succeeds or attempts are exhausted, in which case the
// error of the last attempt is returned unchanged. Each attempt runs with
// the attempt number in scope, so everything op logs carries it.
func (r *Retrier) Do(op func(log.Logger) error) error {
	delay := time.Duration(r.Cfg.InitialDelay) * time.Millisecond
	maxDelay := time.Duration(r.Cfg.MaxDelay) * time.Millisecond

	var err error

	for attempt := 1; attempt <= r.Cfg.MaxAttempts; attempt++ {
		pairs := log.Pairs{{Key: "attempt", Value: attempt}}

		err = r.Log.LocalData(pairs, func(l log.Logger) error {
			return op(l)
		})
		if err == nil {
			return nil
		}

		if attempt < r.Cfg.MaxAttempts {
			log.InfoData(r.Log,
				log.Data{"attempt": attempt, "delay": delay.String()},
				"operation failed, retrying: %v", err)

			time.Sleep(delay)

			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return err
}

func (r *Retrier) rewrap(scoped log.Logger) log.Logger {
	c := *r
	c.Log = scoped
	return &c
}

func (r *Retrier) LogMessage(level log.Level, text string, data log.Data) {
	r.Log.LogMessage(level, text, data)
}

func (r *Retrier) LocalData(pairs log.Pairs, fn func(log.Logger) error) error {
	return log.ForwardLocalData(r.Log, r.rewrap, pairs, fn)
}

func (r *Retrier) LocalDomain(name string, fn func(log.Logger) error) error {
	return log.ForwardLocalDomain(r.Log, r.rewrap, name, fn)
}

func (r *Retrier) LoggerEnv() *log.Env {
	return r.Log.LoggerEnv()
}
