// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the taxonomy API.
// Handlers are grouped by concern (categories, auth) and receive their
// dependencies through the handler struct. Every response uses the
// {success, data, error} JSON envelope.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

// errorBody carries the error message and optional per-field details.
type errorBody struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// respond writes a success envelope with the given status and payload.
func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondErr writes an error envelope with the given status and message.
func respondErr(w http.ResponseWriter, status int, message string, details ...FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := envelope{Success: false, Error: &errorBody{Message: message, Details: details}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode error response failed", "error", err)
	}
}

// decodeBody parses a JSON request body into dst. Returns false (after
// writing a 400 envelope) when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// Health returns a simple JSON health check response.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
