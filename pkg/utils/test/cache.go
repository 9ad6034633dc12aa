package testutils

import (
	"context"
	"fmt"
	"time"
)

// MockCache is a map-backed cache store with injectable failures
type MockCache struct {
	Entries map[string]string

	// FailGet causes every Get to return an error
	FailGet bool

	// FailSet causes every Set to return an error
	FailSet bool

	gets int
	sets int
}

func NewMockCache() *MockCache {
	return &MockCache{
		Entries: make(map[string]string),
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool, error) {
	m.gets++
	if m.FailGet {
		return "", false, fmt.Errorf("mock cache get failure")
	}
	val, ok := m.Entries[key]
	return val, ok, nil
}

func (m *MockCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.sets++
	if m.FailSet {
		return fmt.Errorf("mock cache set failure")
	}
	m.Entries[key] = value
	return nil
}

// Gets reports how many times Get was invoked.
func (m *MockCache) Gets() int { return m.gets }

// Sets reports how many times Set was invoked.
func (m *MockCache) Sets() int { return m.sets }

func (m *MockCache) Close() error {
	return nil
}
