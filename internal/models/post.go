package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a minimal content record. Posts have no API of their own here;
// they exist so category post counts and the delete-detach policy have
// something real to count against.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	CategoryID *uuid.UUID `json:"category_id"`
	Published  bool       `json:"published"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
