package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/app/store"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/testkit"
)

func TestCheckoutEmptyCartFailsWithoutRoundTrip(t *testing.T) {
	s, mt := newTestStores()
	ctx := context.Background()

	order, err := s.Orders.Checkout(ctx)
	require.ErrorIs(t, err, store.ErrEmptyCart)
	assert.Nil(t, order)
	assert.NotEmpty(t, s.Orders.Err())
	mt.AssertNoCalls(t)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	s, mt := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "POST", Path: "/orders", Body: map[string]any{
			"order": map[string]any{"id": 42, "total_price": 40.0, "status": "pending"},
		}},
	)
	ctx := context.Background()

	require.NoError(t, s.Cart.Add(ctx, product(7, "shoe", 20)))
	require.NoError(t, s.Cart.Add(ctx, product(7, "shoe", 20)))

	order, err := s.Orders.Checkout(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 0, s.Cart.Len(), "successful checkout empties the cart")

	calls := mt.Calls()
	require.Len(t, calls, 3)
	testkit.AssertJSONBody(t, map[string]any{
		"items": []map[string]any{
			{"product_id": 7, "quantity": 2, "price": 20.0},
		},
	}, calls[2].Body)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/cart"},
		testkit.Step{Method: "POST", Path: "/orders", Status: 500,
			Body: map[string]any{"message": "order creation failed"}},
	)
	ctx := context.Background()

	require.NoError(t, s.Cart.Add(ctx, product(7, "shoe", 20)))

	order, err := s.Orders.Checkout(ctx)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, api.IsServer(err))
	assert.Equal(t, 1, s.Cart.Len(), "failed checkout leaves the cart intact")
	assert.Equal(t, "order creation failed", s.Orders.Err())
}

func TestFetchReplacesOrderHistory(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/orders", Body: []map[string]any{
			{"id": 1, "total_price": 10.0, "status": "delivered"},
			{"id": 2, "total_price": 20.0, "status": "pending"},
		}},
	)

	require.NoError(t, s.Orders.Fetch(context.Background()))
	orders := s.Orders.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, models.StatusDelivered, orders[0].Status)
	assert.Equal(t, models.StatusPending, orders[1].Status)
}

func TestUpdateStatusSyncsListAndDetail(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/orders/2", Body: map[string]any{
			"order": map[string]any{
				"id": 2, "total_price": 20.0, "status": "pending",
				"items": []map[string]any{
					{"id": 9, "order_id": 2, "product_id": 7, "quantity": 1, "price": 20.0},
				},
			},
		}},
		testkit.Step{Method: "GET", Path: "/orders", Body: []map[string]any{
			{"id": 2, "total_price": 20.0, "status": "pending"},
		}},
		testkit.Step{Method: "PUT", Path: "/orders/2/status", Body: map[string]any{
			"order": map[string]any{"id": 2, "total_price": 20.0, "status": "processing"},
		}},
	)
	ctx := context.Background()

	require.NoError(t, s.Orders.FetchDetail(ctx, 2))
	require.NoError(t, s.Orders.Fetch(ctx))

	require.NoError(t, s.Orders.UpdateStatus(ctx, 2, models.StatusProcessing))

	assert.Equal(t, models.StatusProcessing, s.Orders.Orders()[0].Status)
	detail := s.Orders.Detail()
	require.NotNil(t, detail)
	assert.Equal(t, models.StatusProcessing, detail.Status)
	assert.Len(t, detail.Items, 1, "status update keeps the item snapshots")
}

func TestUpdateStatusUnknownStateFailsLocally(t *testing.T) {
	s, mt := newTestStores()

	err := s.Orders.UpdateStatus(context.Background(), 2, models.OrderStatus("returned"))
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	mt.AssertNoCalls(t)
}

func TestCancelRejectedByBackendLeavesStatus(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/orders", Body: []map[string]any{
			{"id": 3, "total_price": 15.0, "status": "delivered"},
		}},
		testkit.Step{Method: "PUT", Path: "/orders/3/status", Status: 422,
			Body: map[string]any{"message": "order already delivered"}},
	)
	ctx := context.Background()

	require.NoError(t, s.Orders.Fetch(ctx))

	err := s.Orders.Cancel(ctx, 3)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.Equal(t, models.StatusDelivered, s.Orders.Orders()[0].Status,
		"rejected transition must not change local status")
	assert.Equal(t, "order already delivered", s.Orders.Err())
}
