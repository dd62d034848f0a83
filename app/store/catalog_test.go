package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/app/store"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/testkit"
)

func productList(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"id": i, "name": "p", "price": float64(i), "category_id": 1,
		})
	}
	return out
}

func TestCatalogFetchAcceptsBareAndEnvelopedLists(t *testing.T) {
	bare, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Body: productList(3)},
	)
	require.NoError(t, bare.Catalog.Fetch(context.Background()))
	assert.Len(t, bare.Catalog.Products(), 3)

	enveloped, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products",
			Body: map[string]any{"products": productList(2)}},
	)
	require.NoError(t, enveloped.Catalog.Fetch(context.Background()))
	assert.Len(t, enveloped.Catalog.Products(), 2)
}

func TestCatalogSearchReplacesListing(t *testing.T) {
	s, mt := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Times: 1, Body: productList(10)},
		testkit.Step{Method: "GET", Path: "/products", Body: productList(2)},
	)
	ctx := context.Background()

	require.NoError(t, s.Catalog.Fetch(ctx))
	require.Len(t, s.Catalog.Products(), 10)

	require.NoError(t, s.Catalog.Search(ctx, "shoe"))
	assert.Len(t, s.Catalog.Products(), 2, "search result replaces the listing")

	calls := mt.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "search=shoe", calls[1].Query)
}

func TestCatalogFailedFetchKeepsListing(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Times: 1, Body: productList(4)},
		testkit.Step{Method: "GET", Path: "/products", Status: 500,
			Body: map[string]any{"message": "boom"}},
	)
	ctx := context.Background()

	require.NoError(t, s.Catalog.Fetch(ctx))

	err := s.Catalog.Fetch(ctx)
	require.Error(t, err)
	assert.True(t, api.IsServer(err))
	assert.Len(t, s.Catalog.Products(), 4, "failed fetch leaves the old listing visible")
	assert.Equal(t, "boom", s.Catalog.Err())
}

func TestCatalogLatestIsLastEightNewestFirst(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Body: productList(10)},
	)
	require.NoError(t, s.Catalog.Fetch(context.Background()))

	latest := s.Catalog.Latest()
	require.Len(t, latest, 8)
	assert.Equal(t, int64(10), latest[0].ID, "newest first")
	assert.Equal(t, int64(3), latest[7].ID)

	// Fewer products than the window: all of them, still reversed.
	small, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Body: productList(3)},
	)
	require.NoError(t, small.Catalog.Fetch(context.Background()))
	latest = small.Catalog.Latest()
	require.Len(t, latest, 3)
	assert.Equal(t, int64(3), latest[0].ID)
}

func TestIsNewWindow(t *testing.T) {
	recent := time.Now().Add(-1 * time.Hour)
	old := time.Now().Add(-3 * 24 * time.Hour)

	assert.True(t, store.IsNew(&recent))
	assert.False(t, store.IsNew(&old))
	assert.False(t, store.IsNew(nil), "missing timestamp is never new")
}

func TestCatalogCreateAppendsAfterConfirmation(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Body: productList(2)},
		testkit.Step{Method: "POST", Path: "/products", Body: map[string]any{
			"product": map[string]any{"id": 3, "name": "new shoe", "price": 30.0, "category_id": 1},
		}},
	)
	ctx := context.Background()

	require.NoError(t, s.Catalog.Fetch(ctx))

	created, err := s.Catalog.Create(ctx, models.ProductInput{
		Name: "new shoe", Price: 30, CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Len(t, s.Catalog.Products(), 3)
}

func TestCatalogCreateInvalidInputFailsLocally(t *testing.T) {
	s, mt := newTestStores()

	_, err := s.Catalog.Create(context.Background(), models.ProductInput{
		Name: "x", Price: 0, CategoryID: 0,
	})
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	mt.AssertNoCalls(t)
}

func TestCatalogDeleteRemovesAfterConfirmation(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/products", Body: productList(3)},
		testkit.Step{Method: "DELETE", Path: "/products/2"},
	)
	ctx := context.Background()

	require.NoError(t, s.Catalog.Fetch(ctx))
	require.NoError(t, s.Catalog.Delete(ctx, 2))

	products := s.Catalog.Products()
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, int64(2), p.ID)
	}
}

func TestCategoriesLifecycle(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/categories", Body: map[string]any{
			"categories": []map[string]any{
				{"id": 1, "name": "shoes"},
				{"id": 2, "name": "hats"},
			},
		}},
		testkit.Step{Method: "PUT", Path: "/categories/2", Body: map[string]any{
			"category": map[string]any{"id": 2, "name": "headwear"},
		}},
		testkit.Step{Method: "DELETE", Path: "/categories/1"},
	)
	ctx := context.Background()

	require.NoError(t, s.Categories.Fetch(ctx))
	require.Len(t, s.Categories.Categories(), 2)

	updated, err := s.Categories.Update(ctx, 2, models.CategoryInput{Name: "headwear"})
	require.NoError(t, err)
	assert.Equal(t, "headwear", updated.Name)
	assert.Equal(t, "headwear", s.Categories.Categories()[1].Name)

	require.NoError(t, s.Categories.Delete(ctx, 1))
	cats := s.Categories.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, int64(2), cats[0].ID)
}

func TestCategoriesFailedDeleteKeepsEntry(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/categories", Body: []map[string]any{
			{"id": 1, "name": "shoes"},
		}},
		testkit.Step{Method: "DELETE", Path: "/categories/1", Status: 409,
			Body: map[string]any{"message": "category still has products"}},
	)
	ctx := context.Background()

	require.NoError(t, s.Categories.Fetch(ctx))

	err := s.Categories.Delete(ctx, 1)
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))
	assert.Len(t, s.Categories.Categories(), 1)
}
