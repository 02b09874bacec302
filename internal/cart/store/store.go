package store

import (
	"context"
	"errors"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// SnapshotStore holds the last authoritative cart snapshot per shopper. It is
// written only by the synchronizer after a refetch; nothing else mutates it.
type SnapshotStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrNotCached = errors.New("snapshot not cached")
