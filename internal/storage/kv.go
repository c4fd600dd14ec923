package storage

import (
	"net/url"
	"sort"
	"sync"
)

// KV is a flat store of string values. Values round-trip as strings; the
// callers own their encoding.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is an in-memory KV for tests and runs without a database.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists stored keys in lexical order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Namespaced prefixes every key so several players can share one store.
type Namespaced struct {
	kv     KV
	prefix string
}

var _ KV = (*Namespaced)(nil)

// anonymousPrefix holds the keys of a player without a name. A bare "%"
// never comes out of url.PathEscape, so no named player can reach it.
const anonymousPrefix = "%/"

// Namespace wraps kv so that keys live under the path-escaped name
// followed by "/". The local player's keys are not namespaced at all.
func Namespace(kv KV, name string) *Namespaced {
	prefix := anonymousPrefix
	if name != "" {
		prefix = url.PathEscape(name) + "/"
	}
	return &Namespaced{kv: kv, prefix: prefix}
}

func (n *Namespaced) Get(key string) (string, bool, error) {
	return n.kv.Get(n.prefix + key)
}

func (n *Namespaced) Set(key, value string) error {
	return n.kv.Set(n.prefix+key, value)
}

func (n *Namespaced) Delete(key string) error {
	return n.kv.Delete(n.prefix + key)
}
