package api

import (
	"context"
	gohttp "net/http"
	"strconv"

	"github.com/shashiranjanraj/dokon/app/models"
)

// Products fetches the whole catalogue.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "products", "/products", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](resp, "products")
}

// ProductsByCategory fetches the server-side filtered listing for one
// category (not a client-side filter).
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "products",
		"/products/by-category/"+strconv.FormatInt(categoryID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](resp, "products")
}

// SearchProducts runs a server-side search. Empty/whitespace policy is the
// backend's call; the text is passed through as-is.
func (c *Client) SearchProducts(ctx context.Context, text string) ([]models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "products", "/products", nil,
		map[string]string{"search": text})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](resp, "products")
}

// Product fetches a single product for detail views.
func (c *Client) Product(ctx context.Context, id int64) (models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "products",
		"/products/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return models.Product{}, err
	}
	return decodeObject[models.Product](resp, "product")
}

// CreateProduct adds a catalogue entry (admin).
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodPost, "products", "/products", in, nil)
	if err != nil {
		return models.Product{}, err
	}
	return decodeObject[models.Product](resp, "product")
}

// UpdateProduct replaces a catalogue entry (admin).
func (c *Client) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (models.Product, error) {
	resp, err := c.call(ctx, gohttp.MethodPut, "products",
		"/products/"+strconv.FormatInt(id, 10), in, nil)
	if err != nil {
		return models.Product{}, err
	}
	return decodeObject[models.Product](resp, "product")
}

// DeleteProduct removes a catalogue entry (admin).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.call(ctx, gohttp.MethodDelete, "products",
		"/products/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "categories", "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Category](resp, "categories")
}

// CreateCategory adds a category (admin).
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	resp, err := c.call(ctx, gohttp.MethodPost, "categories", "/categories", in, nil)
	if err != nil {
		return models.Category{}, err
	}
	return decodeObject[models.Category](resp, "category")
}

// UpdateCategory replaces a category (admin).
func (c *Client) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (models.Category, error) {
	resp, err := c.call(ctx, gohttp.MethodPut, "categories",
		"/categories/"+strconv.FormatInt(id, 10), in, nil)
	if err != nil {
		return models.Category{}, err
	}
	return decodeObject[models.Category](resp, "category")
}

// DeleteCategory removes a category (admin).
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.call(ctx, gohttp.MethodDelete, "categories",
		"/categories/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}
