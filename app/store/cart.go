package store

import (
	"context"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/collection"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

// Direction is a relative quantity change for UpdateQuantity.
type Direction string

const (
	Increment Direction = api.ActionIncrement
	Decrement Direction = api.ActionDecrement
)

// Cart mirrors the server-side cart. The mirror is never allowed to run
// ahead of the server: every mutation goes remote first and touches local
// state only after the backend confirms, so a failed call leaves the cart
// exactly as it was. Fetch is the authoritative resync path.
type Cart struct {
	base
	api   *api.Client
	lines []models.CartLine
}

func NewCart(c *api.Client) *Cart {
	return &Cart{api: c}
}

// Add puts one unit of product in the cart. An existing line for the same
// product is incremented; otherwise a new line with quantity 1 appears.
// There is never more than one line per product id.
func (s *Cart) Add(ctx context.Context, product models.Product) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.CartAdd(ctx, product.ID, 1); err != nil {
		s.fail(err)
		metrics.RecordMutation("cart", "add", false)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		// The backend assigns the real line id; until the next resync the
		// product id doubles as the key, which the one-line-per-product
		// invariant makes unambiguous.
		s.lines = append(s.lines, models.CartLine{
			LineID:   product.ID,
			Product:  product,
			Quantity: 1,
		})
	}
	n := len(s.lines)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("cart", "add", true)
	event.Fire(event.CartChanged, n)
	return nil
}

// Remove deletes the whole line for a product, whatever its quantity.
func (s *Cart) Remove(ctx context.Context, productID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.CartRemove(ctx, productID); err != nil {
		s.fail(err)
		metrics.RecordMutation("cart", "remove", false)
		return err
	}

	s.mu.Lock()
	s.lines = collection.Filter(s.lines, func(l models.CartLine) bool {
		return l.Product.ID != productID
	})
	n := len(s.lines)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("cart", "remove", true)
	event.Fire(event.CartChanged, n)
	return nil
}

// UpdateQuantity nudges a line by one in the given direction. The wire
// carries the direction, not an absolute quantity, and the local mutation
// applies the identical rule the backend does: increment unconditionally;
// decrement drops the line when its quantity was already 1. Quantity 0 can
// never be observed.
func (s *Cart) UpdateQuantity(ctx context.Context, productID int64, dir Direction) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	i := s.indexOf(productID)
	var lineID int64
	if i >= 0 {
		lineID = s.lines[i].LineID
	}
	s.mu.RUnlock()

	if i < 0 {
		err := api.NewValidation("no cart line for this product")
		s.fail(err)
		return err
	}

	s.start()
	if err := s.api.CartUpdate(ctx, lineID, string(dir)); err != nil {
		s.fail(err)
		metrics.RecordMutation("cart", "update", false)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(productID); i >= 0 {
		switch dir {
		case Increment:
			s.lines[i].Quantity++
		case Decrement:
			if s.lines[i].Quantity > 1 {
				s.lines[i].Quantity--
			} else {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			}
		}
	}
	n := len(s.lines)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("cart", "update", true)
	event.Fire(event.CartChanged, n)
	return nil
}

// Fetch replaces the whole local cart from the authoritative remote list.
// Call after session restore, and whenever drift is suspected.
func (s *Cart) Fetch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	lines, err := s.api.Cart(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.lines = lines
	n := len(s.lines)
	s.mu.Unlock()

	s.finish()
	event.Fire(event.CartChanged, n)
	return nil
}

// Clear resets the local cart without a remote call. Used after a successful
// checkout, when the backend has already materialized the order and dropped
// its own cart state.
func (s *Cart) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	event.Fire(event.CartChanged, 0)
}

// Lines returns a copy of the current cart lines.
func (s *Cart) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of cart lines.
func (s *Cart) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// TotalPrice is recomputed from the current lines on every call — it is
// never stored, so it cannot go stale.
func (s *Cart) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Sum(s.lines, models.CartLine.Total)
}

// indexOf finds the line for a product id; callers hold mu.
func (s *Cart) indexOf(productID int64) int {
	return collection.IndexOf(s.lines, func(l models.CartLine) bool {
		return l.Product.ID == productID
	})
}
