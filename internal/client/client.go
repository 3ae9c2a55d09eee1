// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client implements the HTTP client for the taxonomy API. It is
// the transport layer behind the category form controller: it attaches the
// bearer token, decodes the response envelope, and maps HTTP failures to
// typed errors the controller can branch on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jacms/internal/auth"
	"jacms/internal/models"
)

var (
	// ErrUnauthorized is returned for 401 responses and for sessions that
	// fail the local shape/expiry check. Callers redirect to login.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when the server rejects a create or update
	// because the slug is already in use.
	ErrSlugTaken = errors.New("slug already taken")
)

// ValidationError carries the per-field details of a 400 response.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// FieldError mirrors the API's error detail entries.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// CategoryBody is the request payload for create and update. Description
// is a pointer so "no description" serializes as null rather than "".
type CategoryBody struct {
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description"`
	ParentID        *uuid.UUID `json:"parentId"`
	IsActive        bool       `json:"isActive"`
	SortOrder       int        `json:"sortOrder"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription *string    `json:"metaDescription"`
}

// Client talks to the taxonomy API on behalf of one authenticated session.
type Client struct {
	baseURL string
	http    *http.Client
	session *auth.Session
}

// New creates a Client for the given API base URL (e.g. "https://host/api")
// and session.
func New(baseURL string, session *auth.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string       `json:"message"`
		Details []FieldError `json:"details"`
	} `json:"error"`
}

// Categories fetches the full category list.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := c.call(ctx, http.MethodGet, "/categories", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ParentCandidates fetches the parent-eligible categories.
func (c *Client) ParentCandidates(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := c.call(ctx, http.MethodGet, "/categories/root", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Category fetches a single category by ID.
func (c *Client) Category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := c.call(ctx, http.MethodGet, "/categories/"+id.String(), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// SlugTaken performs the advisory availability check: a 404 means the slug
// is free, any other response means it must be treated as taken. The
// database uniqueness constraint remains authoritative.
func (c *Client) SlugTaken(ctx context.Context, slug string) (bool, error) {
	err := c.call(ctx, http.MethodGet, "/categories/slug/"+slug, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if errors.Is(err, ErrUnauthorized) {
		return true, err
	}
	// Any non-404 outcome, including transport errors, counts as taken.
	return true, nil
}

// CreateCategory creates a category and returns the stored record.
func (c *Client) CreateCategory(ctx context.Context, body *CategoryBody) (*models.Category, error) {
	var cat models.Category
	if err := c.call(ctx, http.MethodPost, "/categories", body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory replaces a category's editable fields.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, body *CategoryBody) (*models.Category, error) {
	var cat models.Category
	if err := c.call(ctx, http.MethodPut, "/categories/"+id.String(), body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/categories/"+id.String(), nil, nil)
}

// call performs one API request: marshals body, attaches the bearer token,
// decodes the envelope into out, and maps failures to typed errors.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	// An expired or malformed session is "logged out" — don't bother the
	// server with a request that can only 401.
	if !c.session.Valid(time.Now()) {
		return ErrUnauthorized
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return conflictError(&env, decodeErr)
	case resp.StatusCode == http.StatusBadRequest:
		return validationError(&env, decodeErr)
	case resp.StatusCode >= 400:
		return serverError(resp.StatusCode, &env, decodeErr)
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// conflictError maps a 409 response. Slug-conflict wording from the server
// becomes ErrSlugTaken so the form can offer regeneration.
func conflictError(env *envelope, decodeErr error) error {
	if decodeErr == nil && env.Error != nil && strings.Contains(env.Error.Message, "slug") {
		return ErrSlugTaken
	}
	return serverError(http.StatusConflict, env, decodeErr)
}

// validationError maps a 400 response to a *ValidationError.
func validationError(env *envelope, decodeErr error) error {
	verr := &ValidationError{Message: "Validation failed"}
	if decodeErr == nil && env.Error != nil {
		verr.Message = env.Error.Message
		verr.Fields = env.Error.Details
	}
	return verr
}

// serverError surfaces the server-provided message where available, with a
// generic fallback for non-JSON bodies.
func serverError(status int, env *envelope, decodeErr error) error {
	if decodeErr == nil && env.Error != nil && env.Error.Message != "" {
		return fmt.Errorf("%s", env.Error.Message)
	}
	return fmt.Errorf("request failed with status %d", status)
}
