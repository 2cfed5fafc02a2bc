package storage

import (
	"context"
	"sort"
	"strings"

	goCache "github.com/patrickmn/go-cache"
)

// Memory keeps entries in process memory. Nothing survives a restart.
type Memory struct {
	cache *goCache.Cache
}

func NewMemory() *Memory {
	return &Memory{cache: goCache.New(goCache.NoExpiration, 0)}
}

func (m *Memory) Available() bool { return true }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.cache.Set(key, value, goCache.NoExpiration)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range m.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
