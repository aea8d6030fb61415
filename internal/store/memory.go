package store

import "sync"

// Memory is an in-process KV used by tests and one-off tooling. It
// honors the same Update semantics as SQLStore: writes inside a failed
// update are discarded.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Update applies fn to a scratch copy and swaps it in only on success.
func (m *Memory) Update(fn func(tx Bucket) error) error {
	m.mu.Lock()
	scratch := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		scratch[k] = v
	}
	m.mu.Unlock()

	tx := &Memory{data: scratch}
	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	m.data = tx.data
	m.mu.Unlock()
	return nil
}
