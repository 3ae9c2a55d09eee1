// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements bearer-token issuance and verification for the
// taxonomy API. Tokens are compact JWTs (header.payload.signature, base64url)
// signed with HMAC-SHA256.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTokenMalformed is returned for tokens that are not three
	// base64url segments or whose payload is not valid JSON.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignature is returned when the signature does not match.
	ErrTokenSignature = errors.New("token signature mismatch")

	// ErrTokenExpired is returned for tokens past their exp claim.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the token payload: the authenticated user's identity plus the
// standard issued-at/expiry timestamps (unix seconds).
type Claims struct {
	UserID    uuid.UUID `json:"sub"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// tokenHeader is the fixed JWT header for all tokens this service signs.
var tokenHeader = mustEncodeSegment(map[string]string{"alg": "HS256", "typ": "JWT"})

// SignToken creates a signed token for the given claims.
func SignToken(claims Claims, secret []byte) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	signing := tokenHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	return signing + "." + sign(signing, secret), nil
}

// VerifyToken checks the signature and expiry of a token and returns its
// claims. This is the server-side check; clients use Session, which cannot
// verify signatures.
func VerifyToken(token string, secret []byte) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	signing := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(sign(signing, secret)), []byte(parts[2])) {
		return nil, ErrTokenSignature
	}

	claims, err := decodeClaims(parts[1])
	if err != nil {
		return nil, err
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// decodeClaims parses the base64url-encoded payload segment.
func decodeClaims(segment string) (*Claims, error) {
	payload, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrTokenMalformed
	}
	return &claims, nil
}

// sign computes the base64url-encoded HMAC-SHA256 of the signing input.
func sign(signing string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signing))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func mustEncodeSegment(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
