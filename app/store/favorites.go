package store

import (
	"context"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/collection"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

// Favorites keeps the user's wishlist twice over: a product slice for
// display and an id set for O(1) membership checks, kept in lockstep under
// the same mutations. Like the cart, local state changes only after the
// backend confirms.
type Favorites struct {
	base
	api      *api.Client
	products []models.Product
	ids      map[int64]struct{}
}

func NewFavorites(c *api.Client) *Favorites {
	return &Favorites{api: c, ids: map[int64]struct{}{}}
}

// Fetch replaces the wishlist from the backend.
func (s *Favorites) Fetch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	products, err := s.api.Favorites(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	ids := make(map[int64]struct{}, len(products))
	for _, p := range products {
		ids[p.ID] = struct{}{}
	}

	s.mu.Lock()
	s.products = products
	s.ids = ids
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	event.Fire(event.FavoritesChanged, n)
	return nil
}

// Add marks a product as favorite. Adding an already-favorite product is a
// no-op locally either way; the backend keeps one entry per product.
func (s *Favorites) Add(ctx context.Context, product models.Product) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.FavoriteAdd(ctx, product.ID); err != nil {
		s.fail(err)
		metrics.RecordMutation("favorites", "add", false)
		return err
	}

	s.mu.Lock()
	if _, ok := s.ids[product.ID]; !ok {
		s.ids[product.ID] = struct{}{}
		s.products = append(s.products, product)
	}
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("favorites", "add", true)
	event.Fire(event.FavoritesChanged, n)
	return nil
}

// Remove unmarks a product. The id leaves the set and the product leaves
// the display list together.
func (s *Favorites) Remove(ctx context.Context, productID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.FavoriteRemove(ctx, productID); err != nil {
		s.fail(err)
		metrics.RecordMutation("favorites", "remove", false)
		return err
	}

	s.mu.Lock()
	delete(s.ids, productID)
	s.products = collection.Filter(s.products, func(p models.Product) bool {
		return p.ID != productID
	})
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("favorites", "remove", true)
	event.Fire(event.FavoritesChanged, n)
	return nil
}

// Toggle adds or removes depending on current membership.
func (s *Favorites) Toggle(ctx context.Context, product models.Product) error {
	if s.IsFavorite(product.ID) {
		return s.Remove(ctx, product.ID)
	}
	return s.Add(ctx, product)
}

// IsFavorite reports membership without scanning the product list.
func (s *Favorites) IsFavorite(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[productID]
	return ok
}

// Products returns a copy of the wishlist.
func (s *Favorites) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of favorites.
func (s *Favorites) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
