package main

import (
	"fmt"
	"time"

	"github.com/carlohamalainen/log/pkg/log"
	"github.com/carlohamalainen/log/pkg/retry"
	"github.com/galdor/go-program"
)

func main() {
	p := program.NewProgram("example", "a small tour of the logging library")

	p.AddOption("c", "cfg-file", "path", "",
		"the path of the logger configuration file")

	p.ParseCommandLine()

	logger := log.DefaultLogger("example")

	if p.IsOptionSet("cfg-file") {
		cfgPath := p.OptionValue("cfg-file")

		var cfg struct {
			Logger log.LoggerCfg `json:"logger"`
		}

		if err := log.LoadCfg(cfgPath, &cfg); err != nil {
			p.Fatal("cannot load configuration: %v", err)
		}

		var err error
		logger, err = log.NewLogger("example", cfg.Logger)
		if err != nil {
			p.Fatal("cannot create logger: %v", err)
		}
	}

	log.Info(logger, "starting")

	err := logger.LocalDomain("job", func(l log.Logger) error {
		pairs := log.Pairs{{Key: "job_id", Value: 1}}

		return l.LocalData(pairs, func(l log.Logger) error {
			log.Trace(l, "scoped work")
			return nil
		})
	})
	if err != nil {
		p.Fatal("job failed: %v", err)
	}

	retrier := retry.NewRetrier(retry.RetrierCfg{
		Log:          logger.Child("retry", log.Data{}),
		MaxAttempts:  3,
		InitialDelay: 100,
	})

	var failures int

	err = retrier.Do(func(l log.Logger) error {
		if failures < 2 {
			failures++
			return fmt.Errorf("transient failure %d", failures)
		}

		log.Info(l, "operation succeeded")
		return nil
	})
	if err != nil {
		p.Fatal("operation failed: %v", err)
	}

	// Foreign callback-based APIs receive a plain function bound to the
	// current environment.
	callback := log.GetLoggerIO(logger)
	callback(time.Now(), log.LevelAttention, "from a foreign callback",
		log.Data{})

	log.Info(logger, "done")
}
