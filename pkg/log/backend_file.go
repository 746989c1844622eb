package log

import (
	"encoding/json"
	"sync"

	"github.com/galdor/go-ejson"
	"gopkg.in/natefinch/lumberjack.v2"
)

type FileBackendCfg struct {
	Path       string `json:"path"`
	MaxSize    int    `json:"max_size,omitempty"` // megabytes
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAge     int    `json:"max_age,omitempty"` // days
	MinLevel   Level  `json:"min_level,omitempty"`
}

// A FileBackend writes one JSON object per message to a rotated log file.
type FileBackend struct {
	Cfg FileBackendCfg

	mutex  sync.Mutex
	writer *lumberjack.Logger
}

func (cfg *FileBackendCfg) ValidateJSON(v *ejson.Validator) {
	v.CheckStringNotEmpty("path", cfg.Path)
}

func NewFileBackend(cfg FileBackendCfg) *FileBackend {
	writer := lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	}

	return &FileBackend{
		Cfg: cfg,

		writer: &writer,
	}
}

func (b *FileBackend) Log(msg Message) {
	if b.Cfg.MinLevel != "" && !msg.Level.AtLeast(b.Cfg.MinLevel) {
		return
	}

	line, err := json.Marshal(msg)
	if err != nil {
		// Data can contain values the json package rejects; keep the rest of
		// the message instead of losing it.
		stripped := msg
		stripped.Data = nil
		line, _ = json.Marshal(stripped)
	}

	line = append(line, '\n')

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.writer.Write(line)
}

func (b *FileBackend) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.writer.Close()
}
