package log

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/carlohamalainen/log/pkg/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(name string) (*Env, *MemoryBackend) {
	backend := NewMemoryBackend(MemoryBackendCfg{})
	return NewLoggerWithBackend(name, backend), backend
}

func TestLogMessage(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	logger.LogMessage(LevelInfo, "hello", Data{"a": 1})

	msgs := backend.Messages()
	require.Len(msgs, 1)

	assert.Equal(LevelInfo, msgs[0].Level)
	assert.Equal("main", msgs[0].Domain)
	assert.Equal("hello", msgs[0].Text)
	assert.Equal(Data{"a": 1}, msgs[0].Data)
	assert.Equal(time.UTC, msgs[0].Time.Location())
	assert.WithinDuration(time.Now(), msgs[0].Time, 5*time.Second)
}

func TestLocalDomainNesting(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	err := logger.LocalDomain("d1", func(l Logger) error {
		return l.LocalDomain("d2", func(l Logger) error {
			return l.LocalDomain("d3", func(l Logger) error {
				Info(l, "inner")
				return nil
			})
		})
	})
	require.NoError(err)

	Info(logger, "outer")

	msgs := backend.Messages()
	require.Len(msgs, 2)

	assert.Equal("main.d1.d2.d3", msgs[0].Domain)
	assert.Equal("main", msgs[1].Domain)
}

func TestLocalDataNesting(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	err := logger.LocalData(Pairs{{"a", 1}, {"b", 1}}, func(l Logger) error {
		return l.LocalData(Pairs{{"b", 2}, {"c", 2}}, func(l Logger) error {
			l.LogMessage(LevelInfo, "inner", Data{"c": 3})
			return nil
		})
	})
	require.NoError(err)

	Info(logger, "outer")

	msgs := backend.Messages()
	require.Len(msgs, 2)

	assert.Equal(Data{"a": 1, "b": 2, "c": 3}, msgs[0].Data)
	assert.Equal(Data{}, msgs[1].Data)
}

func TestLoggerEnvIdempotence(t *testing.T) {
	assert := assert.New(t)

	logger, backend := newTestLogger("main")
	logger.Data = Pairs{{"a", 1}}

	env1 := logger.LoggerEnv()
	env2 := logger.LoggerEnv()

	assert.Equal(env1.Domain, env2.Domain)
	assert.Equal(env1.Data, env2.Data)

	assert.Equal([]string{"main"}, logger.Domain)
	assert.Equal(Pairs{{"a", 1}}, logger.Data)
	assert.Empty(backend.Messages())
}

func TestErrorTransparency(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	testErr := errors.New("boom")

	err := logger.LocalData(Pairs{{"req", "1"}}, func(l Logger) error {
		Info(l, "before failure")
		return testErr
	})
	require.Error(err)
	assert.Equal(testErr, err)
	assert.ErrorIs(err, testErr)

	Info(logger, "after")

	msgs := backend.Messages()
	require.Len(msgs, 2)

	assert.Equal(Data{"req": "1"}, msgs[0].Data)
	assert.Equal(Data{}, msgs[1].Data)
}

func TestPanicRestoresContext(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	recovered := func() (value interface{}) {
		defer func() {
			value = recover()
		}()

		logger.LocalDomain("sub", func(l Logger) error {
			panic("boom")
		})

		return nil
	}()
	assert.Equal("boom", recovered)

	Info(logger, "after")

	msgs := backend.Messages()
	require.Len(msgs, 1)

	assert.Equal("main", msgs[0].Domain)
}

func TestConcurrentScopesAreIndependent(t *testing.T) {
	assert := assert.New(t)

	logger, backend := newTestLogger("main")

	var wg sync.WaitGroup
	for _, name := range []string{"left", "right"} {
		name := name

		wg.Add(1)
		go func() {
			defer wg.Done()

			logger.LocalDomain(name, func(l Logger) error {
				for i := 0; i < 100; i++ {
					Info(l, "tick")
				}
				return nil
			})
		}()
	}
	wg.Wait()

	counts := make(map[string]int)
	for _, msg := range backend.Messages() {
		counts[msg.Domain]++
	}

	assert.Equal(map[string]int{"main.left": 100, "main.right": 100}, counts)
}

func TestScopedRequestScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("svc")

	err := logger.LocalData(Pairs{{"req", "42"}}, func(l Logger) error {
		Info(l, "start")
		return nil
	})
	require.NoError(err)

	Info(logger, "end")

	msgs := backend.Messages()
	require.Len(msgs, 2)

	assert.Equal("svc", msgs[0].Domain)
	assert.Equal(Data{"req": "42"}, msgs[0].Data)
	assert.Equal("start", msgs[0].Text)

	assert.Equal("svc", msgs[1].Domain)
	assert.Equal(Data{}, msgs[1].Data)
	assert.Equal("end", msgs[1].Text)
}

func TestChild(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, backend := newTestLogger("main")

	name := test.RandomName("worker", "")

	child := logger.Child(name, Data{"id": 1})
	Info(child, "child message")
	Info(logger, "parent message")

	msgs := backend.Messages()
	require.Len(msgs, 2)

	assert.Equal("main."+name, msgs[0].Domain)
	assert.Equal(Data{"id": 1}, msgs[0].Data)

	assert.Equal("main", msgs[1].Domain)
	assert.Equal(Data{}, msgs[1].Data)
}
