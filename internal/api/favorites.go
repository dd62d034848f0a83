package api

import (
	"context"
	gohttp "net/http"
	"strconv"

	"github.com/shashiranjanraj/dokon/app/models"
)

// Favorites fetches the current user's favorited products.
func (c *Client) Favorites(ctx context.Context) ([]models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "favorites", "/favorites", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](resp, "favorites")
}

// FavoriteAdd marks a product as favorited.
func (c *Client) FavoriteAdd(ctx context.Context, productID int64) error {
	body := map[string]any{"product_id": productID}
	_, err := c.call(ctx, gohttp.MethodPost, "favorites", "/favorites", body, nil)
	return err
}

// FavoriteRemove unmarks a favorited product.
func (c *Client) FavoriteRemove(ctx context.Context, productID int64) error {
	_, err := c.call(ctx, gohttp.MethodDelete, "favorites",
		"/favorites/"+strconv.FormatInt(productID, 10), nil, nil)
	return err
}
