package log

import "sync"

type MemoryBackendCfg struct {
	MinLevel Level `json:"min_level,omitempty"`
}

// A MemoryBackend buffers messages in process. It is mostly useful in tests
// and as a staging sink before a real backend is configured.
type MemoryBackend struct {
	Cfg MemoryBackendCfg

	mutex    sync.Mutex
	messages []Message
}

func NewMemoryBackend(cfg MemoryBackendCfg) *MemoryBackend {
	return &MemoryBackend{
		Cfg: cfg,
	}
}

func (b *MemoryBackend) Log(msg Message) {
	if b.Cfg.MinLevel != "" && !msg.Level.AtLeast(b.Cfg.MinLevel) {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.messages = append(b.messages, msg)
}

func (b *MemoryBackend) Messages() []Message {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	messages := make([]Message, len(b.messages))
	copy(messages, b.messages)

	return messages
}

func (b *MemoryBackend) Reset() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.messages = nil
}
