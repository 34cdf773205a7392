package cache

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and as a fallback when no
// Redis is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*JobList
	index   map[string]map[string]struct{} // platform bucket -> keys
}

// NewMemoryStore creates an empty in-memory Store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*JobList),
		index:   make(map[string]map[string]struct{}),
	}
}

// GetJobList implements Store
func (s *MemoryStore) GetJobList(_ context.Context, key string) (*JobList, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.entries[key]
	return list, ok, nil
}

// SetJobList implements Store
func (s *MemoryStore) SetJobList(_ context.Context, key, platform string, list *JobList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = list
	if s.index[platform] == nil {
		s.index[platform] = make(map[string]struct{})
	}
	s.index[platform][key] = struct{}{}
	return nil
}

// InvalidatePlatforms implements Store
func (s *MemoryStore) InvalidatePlatforms(_ context.Context, platforms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buckets := append([]string{}, platforms...)
	buckets = append(buckets, IndexAll)
	for _, bucket := range buckets {
		for key := range s.index[bucket] {
			delete(s.entries, key)
		}
		delete(s.index, bucket)
	}
	return nil
}
