package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a shared label attached to articles. Tags have no owner: they are
// created once and referenced by ID thereafter. Unlinking a tag from an
// article removes only the association, never the tag itself.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameAr    *string   `json:"nameAr,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
