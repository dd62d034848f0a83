package api

import (
	"context"
	gohttp "net/http"
	"strconv"

	"github.com/shashiranjanraj/dokon/app/models"
)

// OrderItemInput is one checkout line: the price is captured client-side at
// order creation so the order snapshot is independent of later catalogue
// changes.
type OrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Orders fetches the user's order history.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "orders", "/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Order](resp, "orders")
}

// Order fetches one order with its line-item snapshots.
func (c *Client) Order(ctx context.Context, id int64) (models.OrderDetail, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "orders",
		"/orders/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return models.OrderDetail{}, err
	}
	return decodeObject[models.OrderDetail](resp, "order")
}

// CreateOrder materializes the cart into a persisted order.
func (c *Client) CreateOrder(ctx context.Context, items []OrderItemInput) (models.Order, error) {
	body := map[string]any{"items": items}
	resp, err := c.call(ctx, gohttp.MethodPost, "orders", "/orders", body, nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](resp, "order")
}

// UpdateOrderStatus transitions an order (admin). Transition legality is
// enforced server-side; an illegal transition comes back as a mapped error.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (models.Order, error) {
	body := map[string]string{"status": string(status)}
	resp, err := c.call(ctx, gohttp.MethodPut, "orders",
		"/orders/"+strconv.FormatInt(id, 10)+"/status", body, nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](resp, "order")
}
