// Package models holds the storefront domain types shared by the transport
// adapter and the state containers.
package models

import "time"

// Product is a catalogue entry. Immutable once fetched — a re-fetch replaces
// the value wholesale, it is never patched in place.
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	CategoryID  int64      `json:"category_id"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Category groups products.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CartLine is one product+quantity pairing within the cart. A cart holds at
// most one line per product id, and Quantity is always >= 1 — a line whose
// quantity would reach 0 is removed instead.
type CartLine struct {
	LineID   int64   `json:"line_id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total is the line's contribution to the cart total.
func (l CartLine) Total() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// OrderStatus is the order lifecycle state.
//
// The happy path is forward-only: pending → processing → shipped → delivered.
// pending → cancelled is the only branch, and only while not yet shipped —
// the backend enforces that policy, the client merely surfaces rejections.
// delivered and cancelled are terminal.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderItem is an immutable purchase-time snapshot of one cart line. Later
// catalogue changes never affect it.
type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductName  string  `json:"product_name,omitempty"`
	ProductImage string  `json:"product_image,omitempty"`
}

// Order is a persisted checkout.
type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id,omitempty"`
	TotalPrice float64     `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	TotalItems int         `json:"total_items,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderDetail is an order with its line-item snapshots always present.
type OrderDetail = Order

// Role is the session's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated identity.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// ─── Inputs ───────────────────────────────────────────────────────────────────

// RegisterInput is the sign-up payload; validated locally before any network
// call is spent on it.
type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a partial profile update; empty fields are left untouched
// by the backend.
type ProfileInput struct {
	Name     string `json:"name,omitempty"     validate:"nullable,min=2,max=100"`
	Email    string `json:"email,omitempty"    validate:"nullable,email"`
	Password string `json:"password,omitempty" validate:"nullable,min=8"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string  `json:"name"        validate:"required,min=2,max=255"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	CategoryID  int64   `json:"category_id" validate:"required,gte=1"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	ImageURL    string  `json:"image_url"   validate:"nullable,url"`
}

// CategoryInput is the admin create/update payload.
type CategoryInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=5000"`
	ImageURL    string `json:"image_url"   validate:"nullable,url"`
}
