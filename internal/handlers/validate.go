package handlers

import (
	"strings"
	"unicode/utf8"

	"jacms/internal/slug"
	"jacms/internal/taxonomy"
)

// Validation limits for category fields.
const (
	maxNameLen        = 100
	maxDescriptionLen = 1_000
	maxSortOrder      = 1_000_000
)

// validateCategory checks category payload fields and returns one
// FieldError per invalid field. An empty result means the payload is valid.
func validateCategory(req *categoryRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required."})
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs = append(errs, FieldError{Field: "name", Message: "Name is too long (max 100 characters)."})
	}

	s := strings.TrimSpace(req.Slug)
	if s == "" {
		errs = append(errs, FieldError{Field: "slug", Message: "Slug is required."})
	} else if len(s) > slug.MaxLen {
		errs = append(errs, FieldError{Field: "slug", Message: "Slug is too long (max 60 characters)."})
	} else if slug.Generate(s) != s {
		errs = append(errs, FieldError{Field: "slug", Message: "Slug may only contain lowercase letters, digits, and hyphens."})
	}

	if req.Description != nil && utf8.RuneCountInString(*req.Description) > maxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "Description is too long (max 1,000 characters)."})
	}

	if utf8.RuneCountInString(req.MetaTitle) > taxonomy.MaxMetaTitleLen {
		errs = append(errs, FieldError{Field: "metaTitle", Message: "Meta title is too long (max 60 characters)."})
	}
	if utf8.RuneCountInString(req.MetaDescription) > taxonomy.MaxMetaDescLen {
		errs = append(errs, FieldError{Field: "metaDescription", Message: "Meta description is too long (max 160 characters)."})
	}

	if req.SortOrder != nil && (*req.SortOrder < 0 || *req.SortOrder > maxSortOrder) {
		errs = append(errs, FieldError{Field: "sortOrder", Message: "Sort order must be between 0 and 1,000,000."})
	}

	return errs
}
