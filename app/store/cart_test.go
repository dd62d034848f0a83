package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/app/store"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/testkit"
)

func newTestStores(steps ...testkit.Step) (*store.Stores, *testkit.MockTransport) {
	mt := testkit.NewMockTransport(steps...)
	c := api.New("http://backend",
		api.WithHTTPClient(testkit.Client(mt)),
		api.WithRetries(1))
	return store.NewWithClient(c), mt
}

func product(id int64, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price, CategoryID: 1}
}

func TestCartAddMergesIntoOneLine(t *testing.T) {
	s, mt := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart", Body: map[string]any{"message": "added"}},
	)
	ctx := context.Background()
	shoe := product(7, "shoe", 49.90)

	require.NoError(t, s.Cart.Add(ctx, shoe))
	require.NoError(t, s.Cart.Add(ctx, shoe))
	require.NoError(t, s.Cart.Add(ctx, shoe))

	lines := s.Cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].Product.ID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, mt.CallCount("POST", "/cart"))
	assert.Empty(t, s.Cart.Err())
}

func TestCartDecrementAtOneRemovesLine(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "PUT", Path: "/cart/"},
	)
	ctx := context.Background()
	shoe := product(7, "shoe", 49.90)

	require.NoError(t, s.Cart.Add(ctx, shoe))
	require.NoError(t, s.Cart.Add(ctx, shoe))

	require.NoError(t, s.Cart.UpdateQuantity(ctx, 7, store.Decrement))
	require.Equal(t, 1, s.Cart.Len())
	assert.Equal(t, 1, s.Cart.Lines()[0].Quantity)

	require.NoError(t, s.Cart.UpdateQuantity(ctx, 7, store.Decrement))
	assert.Equal(t, 0, s.Cart.Len(), "decrement at quantity 1 removes the line")
}

func TestCartUpdateQuantityUnknownProductFailsLocally(t *testing.T) {
	s, mt := newTestStores()
	ctx := context.Background()

	err := s.Cart.UpdateQuantity(ctx, 99, store.Increment)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.NotEmpty(t, s.Cart.Err())
	mt.AssertNoCalls(t)
}

func TestCartTotalPriceRecomputed(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "PUT", Path: "/cart/"},
		testkit.Step{Method: "DELETE", Path: "/cart/"},
	)
	ctx := context.Background()

	require.NoError(t, s.Cart.Add(ctx, product(1, "shoe", 10)))
	require.NoError(t, s.Cart.Add(ctx, product(1, "shoe", 10)))
	require.NoError(t, s.Cart.Add(ctx, product(2, "hat", 5.5)))
	assert.InDelta(t, 25.5, s.Cart.TotalPrice(), 1e-9)

	require.NoError(t, s.Cart.UpdateQuantity(ctx, 2, store.Increment))
	assert.InDelta(t, 31.0, s.Cart.TotalPrice(), 1e-9)

	require.NoError(t, s.Cart.Remove(ctx, 1))
	assert.InDelta(t, 11.0, s.Cart.TotalPrice(), 1e-9)

	s.Cart.Clear()
	assert.Zero(t, s.Cart.TotalPrice())
}

func TestCartFailedAddLeavesStateUntouched(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart", Times: 1},
		testkit.Step{Method: "POST", Path: "/cart", Err: errors.New("connection refused")},
	)
	ctx := context.Background()

	require.NoError(t, s.Cart.Add(ctx, product(1, "shoe", 10)))
	before := s.Cart.Lines()

	err := s.Cart.Add(ctx, product(2, "hat", 5))
	require.Error(t, err)
	assert.True(t, api.IsNetwork(err))
	assert.Equal(t, before, s.Cart.Lines(), "failed mutation must not change the cart")
	assert.NotEmpty(t, s.Cart.Err())

	// The next success clears the recorded failure.
	s2, _ := newTestStores(testkit.Step{Method: "POST", Path: "/cart"})
	require.NoError(t, s2.Cart.Add(ctx, product(3, "cap", 3)))
	assert.Empty(t, s2.Cart.Err())
}

func TestCartFetchReplacesLocalState(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "GET", Path: "/cart", Body: map[string]any{
			"items": []map[string]any{
				{"id": 31, "product_id": 7, "name": "shoe", "price": "49.90", "quantity": 2, "category_id": 1},
				{"id": 32, "product_id": 9, "name": "hat", "price": 5.5, "quantity": 1, "category_id": 2},
			},
		}},
	)
	ctx := context.Background()

	require.NoError(t, s.Cart.Add(ctx, product(1, "stale", 99)))
	require.NoError(t, s.Cart.Fetch(ctx))

	lines := s.Cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(31), lines[0].LineID)
	assert.Equal(t, int64(7), lines[0].Product.ID)
	assert.InDelta(t, 49.90, lines[0].Product.Price, 1e-9, "string prices are normalized")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 105.3, s.Cart.TotalPrice(), 1e-9)
}

func TestCartScenarioAddAddDecrementDecrement(t *testing.T) {
	s, mt := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "PUT", Path: "/cart/"},
	)
	ctx := context.Background()
	shoe := product(7, "shoe", 20)

	require.NoError(t, s.Cart.Add(ctx, shoe))
	require.NoError(t, s.Cart.Add(ctx, shoe))
	require.NoError(t, s.Cart.UpdateQuantity(ctx, 7, store.Decrement))
	require.NoError(t, s.Cart.UpdateQuantity(ctx, 7, store.Decrement))

	assert.Equal(t, 0, s.Cart.Len())
	assert.Zero(t, s.Cart.TotalPrice())
	assert.Equal(t, 2, mt.CallCount("POST", "/cart"))
	assert.Equal(t, 2, mt.CallCount("PUT", "/cart/"))
}
