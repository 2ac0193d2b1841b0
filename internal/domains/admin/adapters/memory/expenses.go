package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
)

var _ ports.ExpenseStore = (*ExpenseStore)(nil)

// ExpenseStore keeps the spending ledger in process memory.
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense
}

func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{expenses: map[string]*domain.Expense{}}
}

func (s *ExpenseStore) Save(_ context.Context, expense *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *expense
	s.expenses[expense.ID] = &copy
	return nil
}

func (s *ExpenseStore) List(_ context.Context) ([]*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		copy := *expense
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpentAt.After(out[j].SpentAt) })
	return out, nil
}
