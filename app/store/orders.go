package store

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/collection"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

// ErrEmptyCart is returned by Checkout before any remote call when there is
// nothing to order.
var ErrEmptyCart = errors.New("store: cart is empty")

// Orders tracks the user's order history and one open order detail.
// Checkout is the cart → order handover: the only store operation that
// mutates a sibling container.
type Orders struct {
	base
	api    *api.Client
	cart   *Cart
	orders []models.Order
	detail *models.OrderDetail
}

func NewOrders(c *api.Client, cart *Cart) *Orders {
	return &Orders{api: c, cart: cart}
}

// Checkout materializes the current cart into an order.
//
// An empty cart fails locally with ErrEmptyCart — no round trip, immediate
// feedback. The order items are snapshotted by value from the cart lines
// (product id, quantity, price at purchase) before the call, so clearing
// the cart afterwards cannot touch the created order. Remote failures are
// surfaced: checkout failure must interrupt the flow, unlike cart line
// mutations.
func (s *Orders) Checkout(ctx context.Context) (*models.Order, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.fail(ErrEmptyCart)
		return nil, ErrEmptyCart
	}

	items := collection.Map(lines, func(l models.CartLine) api.OrderItemInput {
		return api.OrderItemInput{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		}
	})

	s.start()
	order, err := s.api.CreateOrder(ctx, items)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("orders", "checkout", false)
		return nil, err
	}

	s.cart.Clear()
	s.finish()
	metrics.RecordMutation("orders", "checkout", true)
	event.Fire(event.OrdersChanged, order.ID)
	return &order, nil
}

// Fetch replaces the order history from the backend.
func (s *Orders) Fetch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	orders, err := s.api.Orders(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	s.finish()
	event.Fire(event.OrdersChanged, int64(0))
	return nil
}

// FetchDetail loads one order with its line-item snapshots.
func (s *Orders) FetchDetail(ctx context.Context, id int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	detail, err := s.api.Order(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.detail = &detail
	s.mu.Unlock()

	s.finish()
	return nil
}

// UpdateStatus transitions an order (admin). Unknown status strings fail
// locally; transition legality is the backend's call and its rejection is
// surfaced with local state unchanged. On success both the list entry and a
// matching open detail are updated, so the two views cannot disagree
// without a second fetch.
func (s *Orders) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !status.Valid() {
		err := api.NewValidation("unknown order status " + string(status))
		s.fail(err)
		return err
	}

	s.start()
	updated, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("orders", "status", false)
		return err
	}

	s.mu.Lock()
	if i := collection.IndexOf(s.orders, func(o models.Order) bool { return o.ID == id }); i >= 0 {
		s.orders[i] = updated
	}
	if s.detail != nil && s.detail.ID == id {
		s.detail.Status = updated.Status
	}
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("orders", "status", true)
	event.Fire(event.OrdersChanged, id)
	return nil
}

// Cancel is UpdateStatus(id, cancelled) with its failures surfaced so the
// initiating action can react; the backend rejects cancelling an order that
// has already shipped.
func (s *Orders) Cancel(ctx context.Context, id int64) error {
	return s.UpdateStatus(ctx, id, models.StatusCancelled)
}

// Orders returns a copy of the order history.
func (s *Orders) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Detail returns a copy of the open order detail, nil when none is loaded.
func (s *Orders) Detail() *models.OrderDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detail == nil {
		return nil
	}
	d := *s.detail
	d.Items = append([]models.OrderItem(nil), s.detail.Items...)
	return &d
}
