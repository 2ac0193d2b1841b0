package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
)

var _ ports.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds the storefront configuration in process memory,
// starting from the deployment defaults.
type ConfigStore struct {
	mu     sync.RWMutex
	config domain.StoreConfig
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{config: domain.DefaultStoreConfig()}
}

func (s *ConfigStore) Get(_ context.Context) (*domain.StoreConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copy := s.config
	return &copy, nil
}

func (s *ConfigStore) Put(_ context.Context, config *domain.StoreConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = *config
	return nil
}
