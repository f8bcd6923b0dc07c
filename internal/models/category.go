package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups articles into a section of the site.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameAr    *string   `json:"nameAr,omitempty"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
