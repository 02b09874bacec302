package checkout

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

var sess = domain.Session{UserID: "user-1", Token: "tok-1"}

type mockRemote struct {
	m      sync.Mutex
	order  *remote.RawOrder
	orders []remote.RawOrder
	err    error
	last   *remote.CheckoutRequest
}

func (r *mockRemote) Checkout(_ context.Context, _ domain.Session, req remote.CheckoutRequest) (*remote.RawOrder, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.last = &req
	if r.err != nil {
		return nil, r.err
	}
	return r.order, nil
}

func (r *mockRemote) GetOrder(context.Context, domain.Session, string) (*remote.RawOrder, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.order, nil
}

func (r *mockRemote) GetOrders(context.Context, domain.Session) ([]remote.RawOrder, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.orders, nil
}

type mockClearer struct {
	m     sync.Mutex
	calls int
}

func (c *mockClearer) ClearLocal(context.Context, domain.Session) (*domain.Cart, error) {
	c.m.Lock()
	defer c.m.Unlock()
	c.calls++
	return domain.EmptyCart(), nil
}

func (c *mockClearer) count() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.calls
}

func liveCart() *domain.Cart {
	return &domain.Cart{
		ID: "cart-1",
		Items: []domain.LineItem{
			{
				ID:        "li-a",
				Product:   domain.Product{ID: "p-a", Name: "Visa Consultation"},
				UnitPrice: decimal.NewFromInt(100),
				Quantity:  1,
			},
			{
				ID:        "li-b",
				Product:   domain.Product{ID: "p-b", Name: "Document Review"},
				UnitPrice: decimal.NewFromInt(50),
				Quantity:  2,
			},
		},
		Totals: domain.Totals{
			Subtotal:        decimal.NewFromInt(200),
			DiscountAmount:  decimal.NewFromInt(20),
			Total:           decimal.NewFromInt(180),
			DiscountApplied: true,
		},
	}
}

func TestFreeze_CapturesTotals(t *testing.T) {
	summary := Freeze(liveCart())

	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.BundleDiscount.Equal(decimal.NewFromInt(20)))
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(180)))
	assert.True(t, summary.DiscountApplied)
	assert.NotEmpty(t, summary.IdempotencyKey)
	assert.WithinDuration(t, time.Now(), summary.CapturedAt, time.Second)
}

func TestFreeze_ImmuneToLaterCartChanges(t *testing.T) {
	cart := liveCart()
	summary := Freeze(cart)

	// the shopper keeps adding while the dialog is open
	cart.Items[0].Quantity = 10
	cart.Items = append(cart.Items, domain.LineItem{ID: "li-c", UnitPrice: decimal.NewFromInt(75), Quantity: 1})
	cart.Totals.Total = decimal.NewFromInt(999)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, 1, summary.Items[0].Quantity)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(180)))
}

func TestFreeze_FreshKeyPerAttempt(t *testing.T) {
	cart := liveCart()
	first := Freeze(cart)
	second := Freeze(cart)
	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey)
}

func TestSubmit_ClearsCartLocally(t *testing.T) {
	rc := &mockRemote{order: &remote.RawOrder{
		OrderID:   "ord-1",
		Status:    "pending",
		Total:     json.RawMessage(`180`),
		CreatedAt: time.Now(),
	}}
	clearer := &mockClearer{}
	s := NewSummarizer(rc, clearer, nil)

	order, err := s.Submit(context.Background(), sess, Freeze(liveCart()))
	require.NoError(t, err)

	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, 1, clearer.count(), "successful order empties the local cart")
}

func TestSubmit_SendsFrozenFigures(t *testing.T) {
	rc := &mockRemote{order: &remote.RawOrder{OrderID: "ord-1", Status: "pending"}}
	s := NewSummarizer(rc, &mockClearer{}, nil)

	summary := Freeze(liveCart())
	_, err := s.Submit(context.Background(), sess, summary)
	require.NoError(t, err)

	require.NotNil(t, rc.last)
	sent := rc.last.OrderSummary
	assert.True(t, sent.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, sent.BundleDiscount.Equal(decimal.NewFromInt(20)))
	assert.True(t, sent.Total.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, summary.IdempotencyKey, sent.IdempotencyKey)
	require.Len(t, sent.Items, 2)
	assert.Equal(t, "p-a", sent.Items[0].ProductID)
}

func TestSubmit_FailureLeavesCartAlone(t *testing.T) {
	rc := &mockRemote{err: &remote.Error{Kind: remote.KindServer, StatusCode: 500}}
	clearer := &mockClearer{}
	s := NewSummarizer(rc, clearer, nil)

	_, err := s.Submit(context.Background(), sess, Freeze(liveCart()))
	require.Error(t, err)
	assert.Equal(t, 0, clearer.count())
}

func TestOrders_ListsHistoryInRemoteOrder(t *testing.T) {
	rc := &mockRemote{orders: []remote.RawOrder{
		{
			OrderID:   "ord-2",
			Status:    "completed",
			Total:     json.RawMessage(`"250"`),
			CreatedAt: time.Now().Add(-time.Hour),
		},
		{
			OrderID:   "ord-1",
			Status:    "pending",
			Total:     json.RawMessage(`180`),
			CreatedAt: time.Now().Add(-2 * time.Hour),
		},
	}}
	s := NewSummarizer(rc, &mockClearer{}, nil)

	orders, err := s.Orders(context.Background(), sess)
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, "ord-2", orders[0].ID)
	assert.Equal(t, domain.OrderStatusCompleted, orders[0].Status)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "ord-1", orders[1].ID)
	assert.Equal(t, domain.OrderStatusPending, orders[1].Status)
}

func TestOrders_Empty(t *testing.T) {
	s := NewSummarizer(&mockRemote{}, &mockClearer{}, nil)

	orders, err := s.Orders(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrders_RemoteFailure(t *testing.T) {
	rc := &mockRemote{err: &remote.Error{Kind: remote.KindServer, StatusCode: 500}}
	s := NewSummarizer(rc, &mockClearer{}, nil)

	_, err := s.Orders(context.Background(), sess)
	require.Error(t, err)
}

func TestOrder_MapsStatusAndItems(t *testing.T) {
	rc := &mockRemote{order: &remote.RawOrder{
		OrderID: "ord-2",
		Status:  "confirmed",
		Items: []remote.RawOrderItem{
			{
				ID:       "li-a",
				Name:     "Visa Consultation",
				Price:    json.RawMessage(`"100"`),
				Quantity: json.RawMessage(`1`),
			},
		},
		Total:     json.RawMessage(`"100"`),
		CreatedAt: time.Now(),
	}}
	s := NewSummarizer(rc, &mockClearer{}, nil)

	order, err := s.Order(context.Background(), sess, "ord-2")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.False(t, order.Status.IsTerminal())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Visa Consultation", order.Items[0].Product.Name)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}
