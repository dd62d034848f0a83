package store

import (
	"context"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/collection"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

// Categories holds the category listing.
type Categories struct {
	base
	api        *api.Client
	categories []models.Category
}

func NewCategories(c *api.Client) *Categories {
	return &Categories{api: c}
}

// Fetch replaces the category listing.
func (s *Categories) Fetch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	n := len(s.categories)
	s.mu.Unlock()

	s.finish()
	event.Fire(event.CatalogChanged, n)
	return nil
}

// Create adds a category (admin) after remote confirmation.
func (s *Categories) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	created, err := s.api.CreateCategory(ctx, in)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("categories", "create", false)
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("categories", "create", true)
	event.Fire(event.CatalogChanged, created.ID)
	return &created, nil
}

// Update replaces a category (admin) after remote confirmation.
func (s *Categories) Update(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	updated, err := s.api.UpdateCategory(ctx, id, in)
	if err != nil {
		s.fail(err)
		metrics.RecordMutation("categories", "update", false)
		return nil, err
	}

	s.mu.Lock()
	if i := collection.IndexOf(s.categories, func(c models.Category) bool { return c.ID == id }); i >= 0 {
		s.categories[i] = updated
	}
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("categories", "update", true)
	event.Fire(event.CatalogChanged, id)
	return &updated, nil
}

// Delete removes a category (admin) after remote confirmation.
func (s *Categories) Delete(ctx context.Context, id int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.fail(err)
		metrics.RecordMutation("categories", "delete", false)
		return err
	}

	s.mu.Lock()
	s.categories = collection.Filter(s.categories, func(c models.Category) bool { return c.ID != id })
	s.mu.Unlock()

	s.finish()
	metrics.RecordMutation("categories", "delete", true)
	event.Fire(event.CatalogChanged, id)
	return nil
}

// Categories returns a copy of the current listing.
func (s *Categories) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}
