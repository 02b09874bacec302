package store

import (
	"context"
	"sync"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// LocalStore keeps snapshots in memory. Suitable for a single gateway
// instance; multi-instance deployments use the redis store so a shopper can
// land on any instance.
type LocalStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Cart
}

func NewLocalStore() *LocalStore {
	return &LocalStore{snapshots: make(map[string]*domain.Cart)}
}

func (l *LocalStore) Get(_ context.Context, userID string) (*domain.Cart, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cart, ok := l.snapshots[userID]
	if !ok {
		return nil, ErrNotCached
	}
	return cart.Clone(), nil
}

func (l *LocalStore) Set(_ context.Context, userID string, cart *domain.Cart) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots[userID] = cart.Clone()
	return nil
}

func (l *LocalStore) Delete(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.snapshots, userID)
	return nil
}
