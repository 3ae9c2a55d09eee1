// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"jacms/internal/cache"
	"jacms/internal/models"
	"jacms/internal/slug"
	"jacms/internal/store"
	"jacms/internal/taxonomy"
)

// slugConflictMessage is the error message for duplicate slugs. The admin
// form matches on it to offer slug regeneration, so the wording is part of
// the API contract.
const slugConflictMessage = "a category with this slug already exists"

// Categories groups the category API handlers and their dependencies.
// cache may be nil, in which case every read goes to the database.
type Categories struct {
	store *store.CategoryStore
	cache *cache.CategoryCache
}

// NewCategories creates a Categories handler group.
func NewCategories(categoryStore *store.CategoryStore, categoryCache *cache.CategoryCache) *Categories {
	return &Categories{store: categoryStore, cache: categoryCache}
}

// categoryRequest is the JSON payload for create and update. A nil
// SortOrder on create means "append after existing siblings".
type categoryRequest struct {
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description"`
	ParentID        *uuid.UUID `json:"parentId"`
	IsActive        *bool      `json:"isActive"`
	SortOrder       *int       `json:"sortOrder"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
}

// List returns all categories with post and child counts. Served from the
// Valkey cache when warm. With ?tree=1 the result is ordered depth-first
// with Depth set for indentation, bypassing the cache.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("tree"); q == "1" || q == "true" {
		items, err := h.store.FlatTree()
		if err != nil {
			slog.Error("list category tree failed", "error", err)
			respondErr(w, http.StatusInternalServerError, "Failed to list categories")
			return
		}
		respond(w, http.StatusOK, items)
		return
	}

	if h.cache != nil {
		if items, ok := h.cache.GetList(r.Context()); ok {
			respond(w, http.StatusOK, items)
			return
		}
	}

	items, err := h.store.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	if h.cache != nil {
		h.cache.SetList(r.Context(), items)
	}
	respond(w, http.StatusOK, items)
}

// Roots returns the parent-eligible categories: all active categories.
// The route name is historical; the admin form filters out self and
// direct children before rendering the dropdown.
func (h *Categories) Roots(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ParentEligible()
	if err != nil {
		slog.Error("list parent-eligible categories failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	respond(w, http.StatusOK, items)
}

// Get returns a single category by ID.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}

	cat, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if cat == nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}
	respond(w, http.StatusOK, cat)
}

// GetBySlug is the slug existence check: 200 with the category when the
// slug is taken, 404 when it is free. The admin form uses the 404 as
// "available".
func (h *Categories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	cat, err := h.store.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find category by slug failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if cat == nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}
	respond(w, http.StatusOK, cat)
}

// Create inserts a new category. Duplicate slugs get a 409 with
// slugConflictMessage — the client availability check is advisory only.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Slug = strings.TrimSpace(req.Slug); req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	if errs := validateCategory(&req); len(errs) > 0 {
		respondErr(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	if req.ParentID != nil {
		parent, err := h.store.FindByID(*req.ParentID)
		if err != nil {
			slog.Error("find parent failed", "error", err)
			respondErr(w, http.StatusInternalServerError, "Failed to load parent category")
			return
		}
		if parent == nil {
			respondErr(w, http.StatusBadRequest, "Validation failed",
				FieldError{Field: "parentId", Message: "Parent category does not exist."})
			return
		}
	}

	cat := h.buildCategory(&req)
	if req.SortOrder == nil {
		next, err := h.store.NextSortOrder(req.ParentID)
		if err != nil {
			slog.Error("next sort order failed", "error", err)
			respondErr(w, http.StatusInternalServerError, "Failed to create category")
			return
		}
		cat.SortOrder = next
	}

	created, err := h.store.Create(cat)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			respondErr(w, http.StatusConflict, slugConflictMessage)
			return
		}
		slog.Error("create category failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}
	slog.Info("category created", "id", created.ID, "slug", created.Slug)
	respond(w, http.StatusCreated, created)
}

// Update replaces the editable fields of a category. Re-parenting is
// rejected when it would make the category its own ancestor; the check
// walks the full parent chain, not just direct children.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}

	existing, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if existing == nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}

	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Slug = strings.TrimSpace(req.Slug); req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	if errs := validateCategory(&req); len(errs) > 0 {
		respondErr(w, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	if req.ParentID != nil {
		parent, err := h.store.FindByID(*req.ParentID)
		if err != nil {
			slog.Error("find parent failed", "error", err)
			respondErr(w, http.StatusInternalServerError, "Failed to load parent category")
			return
		}
		if parent == nil {
			respondErr(w, http.StatusBadRequest, "Validation failed",
				FieldError{Field: "parentId", Message: "Parent category does not exist."})
			return
		}

		all, err := h.store.List()
		if err != nil {
			slog.Error("list categories failed", "error", err)
			respondErr(w, http.StatusInternalServerError, "Failed to update category")
			return
		}
		if taxonomy.WouldCreateCycle(all, id, *req.ParentID) {
			respondErr(w, http.StatusBadRequest, "Validation failed",
				FieldError{Field: "parentId", Message: "A category cannot be its own ancestor."})
			return
		}
	}

	cat := h.buildCategory(&req)
	cat.ID = id
	if req.SortOrder == nil {
		cat.SortOrder = existing.SortOrder
	}

	if err := h.store.Update(cat); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			respondErr(w, http.StatusConflict, slugConflictMessage)
			return
		}
		slog.Error("update category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	updated, err := h.store.FindByID(id)
	if err != nil || updated == nil {
		slog.Error("reload category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to load category")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}
	slog.Info("category updated", "id", id, "slug", updated.Slug)
	respond(w, http.StatusOK, updated)
}

// Delete removes a category. Children are re-parented to root and posts
// detached by the schema's ON DELETE SET NULL, so deleting never cascades.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}

	existing, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if existing == nil {
		respondErr(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		respondErr(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}
	slog.Info("category deleted", "id", id, "slug", existing.Slug)
	respond(w, http.StatusOK, map[string]any{"id": id})
}

// buildCategory maps a validated request onto a Category model, applying
// the documented defaults (active true, empty strings for optional text).
func (h *Categories) buildCategory(req *categoryRequest) *models.Category {
	cat := &models.Category{
		Name:            req.Name,
		Slug:            req.Slug,
		ParentID:        req.ParentID,
		IsActive:        true,
		MetaTitle:       strings.TrimSpace(req.MetaTitle),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
	}
	if req.Description != nil {
		cat.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	return cat
}
