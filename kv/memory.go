package kv

import (
	"context"
	"sync"

	"github.com/rpupo63/marketing-site-backend/errs"
)

// Memory keeps values in process. With a positive quota it rejects writes
// that would grow the total stored bytes past the quota, the way a
// browser's localStorage does.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
}

func NewMemory(quotaBytes int) *Memory {
	return &Memory{
		data:  make(map[string]string),
		quota: quotaBytes,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		size := len(key) + len(value)
		for k, v := range m.data {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > m.quota {
			return errs.NewStorageQuotaFullError("set", m.quota)
		}
	}

	m.data[key] = value
	return nil
}
