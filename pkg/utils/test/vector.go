package testutils

import (
	"context"
	"fmt"

	"github.com/primefold/ragd/pkg/vector"
)

// MockVectorDriver is a test vector driver
type MockVectorDriver struct {
	Documents []vector.Document
	Results   []vector.QueryResult

	// FailQuery causes Query to return an error
	FailQuery bool

	// FailCount causes Count to return an error
	FailCount bool

	queries int
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		Documents: make([]vector.Document, 0),
		Results:   make([]vector.QueryResult, 0),
	}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	m.Documents = append(m.Documents, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	m.queries++
	if m.FailQuery {
		return nil, fmt.Errorf("mock vector query failure")
	}
	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

func (m *MockVectorDriver) Count(_ context.Context) (int, error) {
	if m.FailCount {
		return 0, fmt.Errorf("mock vector count failure")
	}
	return len(m.Documents), nil
}

// Queries reports how many times Query was invoked.
func (m *MockVectorDriver) Queries() int {
	return m.queries
}

func (m *MockVectorDriver) Close() error {
	return nil
}
