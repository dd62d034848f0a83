package store

import (
	"context"
	"time"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/collection"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

// newWindow is how long a product counts as "new" after creation.
const newWindow = 2 * 24 * time.Hour

// Catalog holds the product listing currently on display: the full
// catalogue, one category, or a search result — whichever was fetched last.
type Catalog struct {
	base
	api      *api.Client
	products []models.Product
}

func NewCatalog(c *api.Client) *Catalog {
	return &Catalog{api: c}
}

// Fetch replaces the listing with the whole catalogue.
func (s *Catalog) Fetch(ctx context.Context) error {
	return s.replaceFrom(ctx, s.api.Products)
}

// FetchByCategory replaces the listing with one category's products,
// filtered server-side.
func (s *Catalog) FetchByCategory(ctx context.Context, categoryID int64) error {
	return s.replaceFrom(ctx, func(ctx context.Context) ([]models.Product, error) {
		return s.api.ProductsByCategory(ctx, categoryID)
	})
}

// Search replaces the listing with a server-side search result.
func (s *Catalog) Search(ctx context.Context, text string) error {
	return s.replaceFrom(ctx, func(ctx context.Context) ([]models.Product, error) {
		return s.api.SearchProducts(ctx, text)
	})
}

func (s *Catalog) replaceFrom(ctx context.Context, fetch func(context.Context) ([]models.Product, error)) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	products, err := fetch(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.finish()
	event.Fire(event.CatalogChanged, len(products))
	return nil
}

// FetchByID fetches one product for a detail view. The shared listing is
// not touched.
func (s *Catalog) FetchByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.api.Product(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return &product, nil
}

// Create adds a product (admin). The listing gains the entry only after the
// backend has confirmed it.
func (s *Catalog) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	created, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("catalog", "create", false)
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("catalog", "create", true)
	event.Fire(event.CatalogChanged, n)
	return &created, nil
}

// Update replaces a product (admin), in the listing only after remote
// confirmation.
func (s *Catalog) Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	updated, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("catalog", "update", false)
		return nil, err
	}

	s.mu.Lock()
	if i := collection.IndexOf(s.products, func(p models.Product) bool { return p.ID == id }); i >= 0 {
		s.products[i] = updated
	}
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("catalog", "update", true)
	event.Fire(event.CatalogChanged, n)
	return &updated, nil
}

// Delete removes a product (admin) after remote confirmation.
func (s *Catalog) Delete(ctx context.Context, id int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.fail(err)
		metrics.RecordMutation("catalog", "delete", false)
		return err
	}

	s.mu.Lock()
	s.products = collection.Filter(s.products, func(p models.Product) bool { return p.ID != id })
	n := len(s.products)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("catalog", "delete", true)
	event.Fire(event.CatalogChanged, n)
	return nil
}

// Products returns a copy of the current listing.
func (s *Catalog) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Latest returns the most recently added 8 products, newest first. The
// backend appends new products to the end of the listing.
func (s *Catalog) Latest() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Take(collection.Reverse(s.products), 8)
}

// IsNew reports whether a creation timestamp falls within the last two days
// of wall-clock time. Pure function of the timestamp — "now" moves, so the
// answer is recomputed on every call and never cached.
func IsNew(createdAt *time.Time) bool {
	if createdAt == nil {
		return false
	}
	return time.Since(*createdAt) <= newWindow
}
