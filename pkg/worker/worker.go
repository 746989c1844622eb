package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/carlohamalainen/log/pkg/log"
	"github.com/carlohamalainen/log/pkg/utils"
)

type WorkerFunc func(*Worker) (time.Duration, error)

type WorkerCfg struct {
	Log        log.Logger `json:"-"`
	WorkerFunc WorkerFunc `json:"-"`

	Disabled     bool `json:"disabled"`
	InitialDelay int  `json:"initial_delay"` // milliseconds
}

// A Worker periodically runs a function on its own goroutine, with each run
// deciding the delay before the next one. Failures and panics are logged and
// do not stop the worker.
type Worker struct {
	Cfg WorkerCfg
	Log log.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWorker(cfg WorkerCfg) (*Worker, error) {
	if cfg.WorkerFunc == nil {
		return nil, fmt.Errorf("missing worker function")
	}

	if cfg.Log == nil {
		cfg.Log = log.DefaultLogger("worker")
	}

	w := Worker{
		Cfg: cfg,
		Log: cfg.Log,

		stopChan: make(chan struct{}),
	}

	return &w, nil
}

func (w *Worker) Start() error {
	if w.Cfg.Disabled {
		return nil
	}

	w.wg.Add(1)
	go w.main()

	return nil
}

func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

func (w *Worker) main() {
	defer w.wg.Done()

	initialDelay := time.Duration(w.Cfg.InitialDelay) * time.Millisecond

	timer := time.NewTimer(initialDelay)
	defer timer.Stop()

	for {
		select {
		case <-w.stopChan:
			return

		case <-timer.C:
			delay := 5 * time.Second

			func() {
				defer func() {
					if v := recover(); v != nil {
						msg := utils.RecoverValueString(v)
						trace := utils.StackTrace(0, 20, true)

						log.Attention(w.Log, "panic: %s\n%s", msg, trace)
					}
				}()

				var err error
				delay, err = w.Cfg.WorkerFunc(w)
				if err != nil {
					log.Attention(w.Log, "%v", err)
				}
			}()

			timer.Reset(delay)
		}
	}
}
