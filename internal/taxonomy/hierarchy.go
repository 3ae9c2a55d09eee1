// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"github.com/google/uuid"

	"jacms/internal/models"
)

// FilterParentCandidates returns the categories that the admin form offers
// as parent options when editing the category identified by currentID.
// It excludes the category itself and its direct children.
//
// This is a shallow guard: it does not exclude deeper descendants. The
// authoritative acyclicity check on save is WouldCreateCycle.
func FilterParentCandidates(cats []models.Category, currentID uuid.UUID) []models.Category {
	result := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if c.ID == currentID {
			continue
		}
		if c.ParentID != nil && *c.ParentID == currentID {
			continue
		}
		result = append(result, c)
	}
	return result
}

// WouldCreateCycle reports whether re-parenting the category identified by
// categoryID under parentID would make the category its own ancestor. It
// walks the parent chain upward from the proposed parent. The walk is
// bounded by the total category count so already-corrupt data cannot loop
// forever.
func WouldCreateCycle(cats []models.Category, categoryID, parentID uuid.UUID) bool {
	if categoryID == parentID {
		return true
	}

	byID := make(map[uuid.UUID]*models.Category, len(cats))
	for i := range cats {
		byID[cats[i].ID] = &cats[i]
	}

	current := parentID
	for range cats {
		cat, ok := byID[current]
		if !ok || cat.ParentID == nil {
			return false
		}
		if *cat.ParentID == categoryID {
			return true
		}
		current = *cat.ParentID
	}
	// Walk exhausted the bound without reaching a root: the existing chain
	// is already cyclic, so reject the assignment.
	return true
}
