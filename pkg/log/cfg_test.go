package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	backendData := json.RawMessage(`{"min_level": "info"}`)

	logger, err := NewLogger("test", LoggerCfg{
		BackendType: BackendTypeMemory,
		BackendData: &backendData,
	})
	require.NoError(err)

	backend, ok := logger.Backend.(*MemoryBackend)
	require.True(ok)
	assert.Equal(LevelInfo, backend.Cfg.MinLevel)

	Trace(logger, "filtered out")
	Info(logger, "kept")

	msgs := backend.Messages()
	require.Len(msgs, 1)
	assert.Equal("kept", msgs[0].Text)
}

func TestNewLoggerInvalidCfg(t *testing.T) {
	assert := assert.New(t)

	_, err := NewLogger("test", LoggerCfg{})
	assert.Error(err)

	_, err = NewLogger("test", LoggerCfg{BackendType: "punchcard"})
	assert.Error(err)
}

func TestLoadCfg(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	filePath := filepath.Join(t.TempDir(), "logger.yaml")
	logPath := filepath.Join(t.TempDir(), "test.log")

	t.Setenv("LOG_TEST_PATH", logPath)

	cfgData := `
logger:
  backend_type: "file"
  backend:
    path: {{ quote (env "LOG_TEST_PATH") }}
    max_size: 10
`
	require.NoError(os.WriteFile(filePath, []byte(cfgData), 0600))

	var cfg struct {
		Logger LoggerCfg `json:"logger"`
	}
	require.NoError(LoadCfg(filePath, &cfg))

	logger, err := NewLogger("test", cfg.Logger)
	require.NoError(err)

	backend, ok := logger.Backend.(*FileBackend)
	require.True(ok)
	defer backend.Close()

	assert.Equal(logPath, backend.Cfg.Path)
	assert.Equal(10, backend.Cfg.MaxSize)
}

func TestRenderCfg(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Setenv("LOG_TEST_VALUE", "a b")

	data, err := RenderCfg("test.yaml",
		[]byte(`value: {{ quote (env "LOG_TEST_VALUE") }}`))
	require.NoError(err)
	assert.Equal(`value: "a b"`, string(data))

	_, err = RenderCfg("test.yaml", []byte(`{{ invalid`))
	assert.Error(err)
}
