// Package cart keeps the client-side cart projection consistent with the
// authoritative remote cart. Every mutation is a round trip followed by a full
// refetch; the gateway never predicts what the server will do to the cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/cart/store"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/normalize"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/pricing"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

// ErrOperationInFlight is returned when a mutation arrives while another
// mutation for the same shopper is still outstanding. Overlapping writes have
// no ordering guarantee from the remote service, so the second one fails fast.
var ErrOperationInFlight = errors.New("cart operation already in flight")

// RemoteCart is the slice of the remote API the synchronizer needs. Mutation
// responses carry the mutated cart, but the synchronizer discards them and
// refetches instead: the post-mutation GET is the single source of truth.
type RemoteCart interface {
	GetCart(ctx context.Context, sess domain.Session) (*remote.RawCart, error)
	AddItem(ctx context.Context, sess domain.Session, productID string) (*remote.RawCart, error)
	UpdateQuantity(ctx context.Context, sess domain.Session, lineItemID string, quantity int) (*remote.RawCart, error)
	RemoveItem(ctx context.Context, sess domain.Session, lineItemID string) (*remote.RawCart, error)
	ClearCart(ctx context.Context, sess domain.Session) error
}

type Synchronizer struct {
	remote    RemoteCart
	snapshots store.SnapshotStore
	policy    pricing.BundleDiscount
	sfg       singleflight.Group // collapses concurrent refreshes per shopper

	mu       sync.Mutex
	inflight map[string]struct{}

	log *logrus.Entry
}

func NewSynchronizer(rc RemoteCart, snapshots store.SnapshotStore, policy pricing.BundleDiscount, log *logrus.Logger) *Synchronizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Synchronizer{
		remote:    rc,
		snapshots: snapshots,
		policy:    policy,
		inflight:  make(map[string]struct{}),
		log:       log.WithField("component", "cart"),
	}
}

// fetched is the shared result of a deduplicated refresh. Totals are not part
// of it: each caller aggregates with its own discount toggle.
type fetched struct {
	id    string
	items []domain.LineItem
}

// Snapshot returns the current cart projection, refetching when nothing is
// cached. Totals are re-derived from the cached items with the caller's
// discount toggle, so a toggle flip never needs a round trip.
func (s *Synchronizer) Snapshot(ctx context.Context, sess domain.Session, applyDiscount bool) (*domain.Cart, error) {
	cart, err := s.snapshots.Get(ctx, sess.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotCached) {
			s.log.WithError(err).Warn("snapshot store read failed")
		}
		return s.Refresh(ctx, sess, applyDiscount)
	}
	cart.Totals = pricing.Aggregate(cart.Items, s.policy, applyDiscount)
	return cart, nil
}

// Refresh fetches the authoritative cart, normalizes every item, drops
// entries without a product reference and recomputes totals. Concurrent
// refreshes for the same shopper share one round trip.
func (s *Synchronizer) Refresh(ctx context.Context, sess domain.Session, applyDiscount bool) (*domain.Cart, error) {
	// The fetch is shared by every caller that joined the flight, so it must
	// not die with whichever caller happened to start it; the remote client's
	// own per-request timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sfg.Do(sess.UserID, func() (interface{}, error) {
		raw, err := s.remote.GetCart(fetchCtx, sess)
		if err != nil {
			return nil, fmt.Errorf("fetch cart: %w", err)
		}
		return &fetched{id: raw.ID, items: normalize.Items(raw.Items)}, nil
	})
	if err != nil {
		return nil, err
	}

	f := v.(*fetched)
	cart := &domain.Cart{
		ID:     f.id,
		Items:  f.items,
		Totals: pricing.Aggregate(f.items, s.policy, applyDiscount),
	}
	if err := s.snapshots.Set(ctx, sess.UserID, cart); err != nil {
		// a stale cache is recoverable, the next Snapshot miss refetches
		s.log.WithError(err).Warn("snapshot store write failed")
	}
	return cart, nil
}

// Add asks the remote service to append one unit of the product (or increment
// an existing entry, its call). No local mutation happens before the refetch
// confirms the new state; on failure the prior snapshot stays untouched.
func (s *Synchronizer) Add(ctx context.Context, sess domain.Session, productID string, applyDiscount bool) (*domain.Cart, error) {
	if err := s.begin(sess.UserID); err != nil {
		return nil, err
	}
	defer s.end(sess.UserID)

	if _, err := s.remote.AddItem(ctx, sess, productID); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return s.Refresh(ctx, sess, applyDiscount)
}

// Remove deletes a line item by its cart-entry identity. A not-found answer
// means the entry was already gone (e.g. removed from another tab): the error
// is still reported, but the snapshot is resynced first so the rest of the
// cart is not treated as invalid.
func (s *Synchronizer) Remove(ctx context.Context, sess domain.Session, lineItemID string, applyDiscount bool) (*domain.Cart, error) {
	if err := s.begin(sess.UserID); err != nil {
		return nil, err
	}
	defer s.end(sess.UserID)

	return s.remove(ctx, sess, lineItemID, applyDiscount)
}

// SetQuantity sets an entry to an absolute quantity. A quantity of zero or
// less is a removal, never a clamp.
func (s *Synchronizer) SetQuantity(ctx context.Context, sess domain.Session, lineItemID string, quantity int, applyDiscount bool) (*domain.Cart, error) {
	if err := s.begin(sess.UserID); err != nil {
		return nil, err
	}
	defer s.end(sess.UserID)

	if quantity <= 0 {
		return s.remove(ctx, sess, lineItemID, applyDiscount)
	}

	if _, err := s.remote.UpdateQuantity(ctx, sess, lineItemID, quantity); err != nil {
		s.resyncIfMissing(ctx, sess, applyDiscount, err)
		return nil, fmt.Errorf("update quantity: %w", err)
	}
	return s.Refresh(ctx, sess, applyDiscount)
}

// Clear empties the remote cart. It is the one operation allowed to assume
// its postcondition: on success the local snapshot becomes the empty cart
// without another round trip.
func (s *Synchronizer) Clear(ctx context.Context, sess domain.Session) (*domain.Cart, error) {
	if err := s.begin(sess.UserID); err != nil {
		return nil, err
	}
	defer s.end(sess.UserID)

	if err := s.remote.ClearCart(ctx, sess); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return s.ClearLocal(ctx, sess)
}

// ClearLocal resets the cached snapshot to the empty cart without contacting
// the remote service. Checkout uses it after a successful order, since the
// remote cart is emptied by the order itself.
func (s *Synchronizer) ClearLocal(ctx context.Context, sess domain.Session) (*domain.Cart, error) {
	cart := domain.EmptyCart()
	if err := s.snapshots.Set(ctx, sess.UserID, cart); err != nil {
		s.log.WithError(err).Warn("snapshot store write failed")
	}
	return cart, nil
}

func (s *Synchronizer) remove(ctx context.Context, sess domain.Session, lineItemID string, applyDiscount bool) (*domain.Cart, error) {
	if _, err := s.remote.RemoveItem(ctx, sess, lineItemID); err != nil {
		s.resyncIfMissing(ctx, sess, applyDiscount, err)
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return s.Refresh(ctx, sess, applyDiscount)
}

func (s *Synchronizer) resyncIfMissing(ctx context.Context, sess domain.Session, applyDiscount bool, err error) {
	if !remote.IsNotFound(err) {
		return
	}
	if _, rerr := s.Refresh(ctx, sess, applyDiscount); rerr != nil {
		s.log.WithError(rerr).Warn("resync after missing line item failed")
	}
}

func (s *Synchronizer) begin(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return ErrOperationInFlight
	}
	s.inflight[userID] = struct{}{}
	return nil
}

func (s *Synchronizer) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, userID)
}
