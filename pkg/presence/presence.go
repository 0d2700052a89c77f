// Package presence tracks which users of a tenant currently hold an open
// realtime connection.
package presence

import (
	"sort"
	"sync"
)

type Registry interface {
	// Add records one more connection for the user.
	Add(companyID, userID string)
	// Remove drops one connection; the user goes offline with the last one.
	Remove(companyID, userID string)
	Online(companyID string) []string
	IsOnline(companyID, userID string) bool
}

// Memory is a process-local Registry. Replicated deployments need a shared
// implementation instead.
type Memory struct {
	mu      sync.Mutex
	tenants map[string]map[string]int
}

func NewMemory() *Memory {
	return &Memory{tenants: make(map[string]map[string]int)}
}

func (m *Memory) Add(companyID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users, ok := m.tenants[companyID]
	if !ok {
		users = make(map[string]int)
		m.tenants[companyID] = users
	}
	users[userID]++
}

func (m *Memory) Remove(companyID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users, ok := m.tenants[companyID]
	if !ok {
		return
	}
	if users[userID] <= 1 {
		delete(users, userID)
	} else {
		users[userID]--
	}
	if len(users) == 0 {
		delete(m.tenants, companyID)
	}
}

// Online returns the tenant's online user ids, sorted.
func (m *Memory) Online(companyID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.tenants[companyID]))
	for id := range m.tenants[companyID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Memory) IsOnline(companyID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tenants[companyID][userID] > 0
}
