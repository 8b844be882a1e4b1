package model

import "time"

// Product represents a catalog product. Options is an opaque JSON string
// describing available sizes, wood types and finishes.
type Product struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description,omitempty"`
	Price            float64    `json:"price"`
	Category         string     `json:"category"`
	ImageURL         string     `json:"image_url,omitempty"`
	Options          string     `json:"options,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
