package api

import (
	"context"
	"encoding/json"
	gohttp "net/http"
	"strconv"

	"github.com/shashiranjanraj/dokon/app/models"
)

// Cart mutation directions for CartUpdate. The wire protocol is relative
// ("bump by one in this direction"), never an absolute quantity, so two
// racing updates cannot silently overwrite each other.
const (
	ActionIncrement = "+"
	ActionDecrement = "-"
)

// cartItemRow is the backend's flattened cart row: product fields inlined
// next to the line fields, price sometimes a string. Normalized into
// models.CartLine before anything else sees it.
type cartItemRow struct {
	ID          int64       `json:"id"`
	ProductID   int64       `json:"product_id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Quantity    int         `json:"quantity"`
	ImageURL    string      `json:"image_url"`
	Description string      `json:"description"`
	CategoryID  int64       `json:"category_id"`
}

func (r cartItemRow) toLine() models.CartLine {
	price, _ := r.Price.Float64()
	return models.CartLine{
		LineID: r.ID,
		Product: models.Product{
			ID:          r.ProductID,
			Name:        r.Name,
			Price:       price,
			CategoryID:  r.CategoryID,
			Description: r.Description,
			ImageURL:    r.ImageURL,
		},
		Quantity: r.Quantity,
	}
}

// Cart fetches the authoritative server-side cart.
func (c *Client) Cart(ctx context.Context) ([]models.CartLine, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "cart", "/cart", nil, nil)
	if err != nil {
		return nil, err
	}

	rows, err := decodeList[cartItemRow](resp, "items")
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toLine())
	}
	return lines, nil
}

// CartAdd puts qty units of a product into the remote cart.
func (c *Client) CartAdd(ctx context.Context, productID int64, qty int) error {
	body := map[string]any{"product_id": productID, "quantity": qty}
	_, err := c.call(ctx, gohttp.MethodPost, "cart", "/cart", body, nil)
	return err
}

// CartRemove deletes the whole line for a product, regardless of quantity.
func (c *Client) CartRemove(ctx context.Context, productID int64) error {
	_, err := c.call(ctx, gohttp.MethodDelete, "cart",
		"/cart/"+strconv.FormatInt(productID, 10), nil, nil)
	return err
}

// CartUpdate nudges a line's quantity by one in the given direction
// (ActionIncrement or ActionDecrement).
func (c *Client) CartUpdate(ctx context.Context, lineID int64, action string) error {
	body := map[string]string{"action": action}
	_, err := c.call(ctx, gohttp.MethodPut, "cart",
		"/cart/"+strconv.FormatInt(lineID, 10), body, nil)
	return err
}
