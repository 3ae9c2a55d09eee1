// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"jacms/internal/auth"
)

// testSession returns a session with a freshly signed token. The client
// never verifies signatures, so any secret works here.
func testSession(t *testing.T) *auth.Session {
	t.Helper()
	now := time.Now()
	token, err := auth.SignToken(auth.Claims{
		UserID:    uuid.New(),
		Email:     "editor@example.com",
		Role:      "editor",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, []byte("client-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return auth.NewSession(token)
}

// expiredSession returns a session whose token expired an hour ago.
func expiredSession(t *testing.T) *auth.Session {
	t.Helper()
	now := time.Now()
	token, err := auth.SignToken(auth.Claims{
		UserID:    uuid.New(),
		Email:     "editor@example.com",
		Role:      "editor",
		IssuedAt:  now.Add(-2 * time.Hour).Unix(),
		ExpiresAt: now.Add(-time.Hour).Unix(),
	}, []byte("client-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return auth.NewSession(token)
}

func TestClientCategories(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/categories" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"id":"7f9c24e5-1b3a-4e8d-9f2a-0c6b5d4e3f2a","name":"Technology","slug":"technology",
			 "_count":{"posts":3,"children":1}}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	items, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d categories, want 1", len(items))
	}
	if items[0].Slug != "technology" {
		t.Errorf("slug: got %q", items[0].Slug)
	}
	if items[0].Count.Posts != 3 || items[0].Count.Children != 1 {
		t.Errorf("counts: got %+v", items[0].Count)
	}
	if gotAuth == "" || gotAuth[:7] != "Bearer " {
		t.Errorf("missing bearer token, got %q", gotAuth)
	}
}

func TestClientExpiredSessionSkipsRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", expiredSession(t))
	_, err := c.Categories(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
	// The local expiry check short-circuits before any network traffic.
	if hits != 0 {
		t.Errorf("server was hit %d times", hits)
	}
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"message":"Authentication required"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	_, err := c.Categories(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestClientCategoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"message":"Category not found"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	_, err := c.Category(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestClientSlugTaken(t *testing.T) {
	t.Run("free slug", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"error":{"message":"Category not found"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/api", testSession(t))
		taken, err := c.SlugTaken(context.Background(), "brand-new")
		if err != nil {
			t.Fatalf("SlugTaken: %v", err)
		}
		if taken {
			t.Error("404 must mean the slug is free")
		}
	})

	t.Run("taken slug", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"id":"7f9c24e5-1b3a-4e8d-9f2a-0c6b5d4e3f2a","name":"Technology","slug":"technology"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/api", testSession(t))
		taken, err := c.SlugTaken(context.Background(), "technology")
		if err != nil {
			t.Fatalf("SlugTaken: %v", err)
		}
		if !taken {
			t.Error("200 must mean the slug is taken")
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"message":"Authentication required"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/api", testSession(t))
		taken, err := c.SlugTaken(context.Background(), "technology")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("got %v, want ErrUnauthorized", err)
		}
		if !taken {
			t.Error("unauthorized must report taken so callers stop")
		}
	})

	t.Run("server unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		c := New(srv.URL+"/api", testSession(t))
		taken, err := c.SlugTaken(context.Background(), "technology")
		if err != nil {
			t.Fatalf("transport errors must not surface: %v", err)
		}
		if !taken {
			t.Error("transport errors must count as taken")
		}
	})
}

func TestClientCreateCategoryConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":{"message":"a category with this slug already exists"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	_, err := c.CreateCategory(context.Background(), &CategoryBody{Name: "Technology", Slug: "technology", IsActive: true})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("got %v, want ErrSlugTaken", err)
	}
}

func TestClientCreateCategoryOtherConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":{"message":"category was modified concurrently"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	_, err := c.CreateCategory(context.Background(), &CategoryBody{Name: "Technology", Slug: "technology", IsActive: true})
	if err == nil || errors.Is(err, ErrSlugTaken) {
		t.Fatalf("non-slug 409 must not map to ErrSlugTaken, got %v", err)
	}
}

func TestClientValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"Validation failed","details":[{"field":"name","message":"Name is required."}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))
	_, err := c.CreateCategory(context.Background(), &CategoryBody{Slug: "technology"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %T (%v), want *ValidationError", err, err)
	}
	if verr.Message != "Validation failed" {
		t.Errorf("message: got %q", verr.Message)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "name" {
		t.Errorf("fields: got %+v", verr.Fields)
	}
}

func TestClientUpdateAndDelete(t *testing.T) {
	id := uuid.New()
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"id":"` + id.String() + `","name":"After","slug":"after"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", testSession(t))

	updated, err := c.UpdateCategory(context.Background(), id, &CategoryBody{Name: "After", Slug: "after", IsActive: true})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/categories/"+id.String() {
		t.Errorf("update request: %s %s", gotMethod, gotPath)
	}
	if updated.Name != "After" {
		t.Errorf("name: got %q", updated.Name)
	}

	if err := c.DeleteCategory(context.Background(), id); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/categories/"+id.String() {
		t.Errorf("delete request: %s %s", gotMethod, gotPath)
	}
}
