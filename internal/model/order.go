package model

import "time"

// Order represents a placed customer order. Total is fixed at checkout and
// never recomputed; Status is the only field that changes afterwards.
type Order struct {
	ID              int64       `json:"id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone,omitempty"`
	ShippingAddress string      `json:"shipping_address"`
	Note            string      `json:"note,omitempty"`
	Status          string      `json:"status"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
	Items           []OrderItem `json:"items"`
}

// OrderItem is one line of an order. ProductName and ProductPrice are
// snapshots taken at checkout, so later product edits or deletions never
// alter a placed order. ProductID is kept for traceability only.
type OrderItem struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"order_id"`
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductPrice    float64 `json:"product_price"`
	Quantity        int     `json:"quantity"`
	SelectedOptions string  `json:"selected_options,omitempty"`
	CustomEngraving string  `json:"custom_engraving,omitempty"`
}

// Order statuses.
const (
	OrderStatusNew        = "NEW"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCanceled   = "CANCELED"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}
