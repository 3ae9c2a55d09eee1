// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a node in the content taxonomy. Categories nest via
// ParentID (nil means root) and carry derived SEO metadata.
type Category struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	ParentID        *uuid.UUID `json:"parentId"`
	IsActive        bool       `json:"isActive"`
	SortOrder       int        `json:"sortOrder"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Virtual fields populated by store methods.
	Children []Category    `json:"children,omitempty"`
	Depth    int           `json:"depth,omitempty"`
	Count    CategoryCount `json:"_count"`
}

// CategoryCount carries the aggregate counts returned alongside a category
// in list responses.
type CategoryCount struct {
	Posts    int `json:"posts"`
	Children int `json:"children"`
}
