package services

import (
	"fmt"
	"sync"
)

type mockLogger struct {
	mu      sync.Mutex
	verbose []string
	errors  []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbose = append(m.verbose, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(_ string, _ ...interface{}) {}

func (m *mockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
