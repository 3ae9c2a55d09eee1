// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"strings"
	"time"
)

// Session is the client-side view of a bearer token. It is passed
// explicitly to the form controller and API client instead of being read
// from ambient storage, which keeps both testable.
//
// Clients hold no signing secret, so a Session only checks token shape and
// expiry; a token that passes Valid can still be rejected by the server.
type Session struct {
	Token  string
	claims *Claims
}

// NewSession wraps a raw bearer token. Malformed tokens yield a Session
// whose Valid always reports false — callers treat that as logged out.
func NewSession(token string) *Session {
	s := &Session{Token: token}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return s
	}
	claims, err := decodeClaims(parts[1])
	if err != nil {
		return s
	}
	s.claims = claims
	return s
}

// Valid reports whether the token is well-formed and unexpired at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.claims == nil {
		return false
	}
	return now.Unix() < s.claims.ExpiresAt
}

// Claims returns the decoded (but unverified) claims, or nil for a
// malformed token.
func (s *Session) Claims() *Claims {
	if s == nil {
		return nil
	}
	return s.claims
}
