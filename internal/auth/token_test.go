package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testSecret = []byte("test-secret")

func testClaims(ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		UserID:    uuid.New(),
		Email:     "admin@jacms.local",
		Role:      "admin",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	claims := testClaims(time.Hour)

	token, err := SignToken(claims, testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	got, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got.UserID != claims.UserID || got.Email != claims.Email || got.Role != claims.Role {
		t.Errorf("claims mismatch: got %+v, want %+v", got, claims)
	}
}

func TestVerifyToken_Errors(t *testing.T) {
	valid, err := SignToken(testClaims(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	expired, err := SignToken(testClaims(-time.Minute), testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrTokenMalformed},
		{"two segments", "abc.def", ErrTokenMalformed},
		{"four segments", "a.b.c.d", ErrTokenMalformed},
		{"tampered payload", tamper(valid, 1), ErrTokenSignature},
		{"tampered signature", tamper(valid, 2), ErrTokenSignature},
		{"wrong secret", resign(t, valid), ErrTokenSignature},
		{"expired", expired, ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.token, testSecret)
			if !errors.Is(err, tt.want) {
				t.Errorf("VerifyToken(%q) error = %v, want %v", tt.name, err, tt.want)
			}
		})
	}
}

// tamper flips a character in the given token segment.
func tamper(token string, segment int) string {
	parts := strings.Split(token, ".")
	seg := []byte(parts[segment])
	if seg[0] == 'A' {
		seg[0] = 'B'
	} else {
		seg[0] = 'A'
	}
	parts[segment] = string(seg)
	return strings.Join(parts, ".")
}

// resign re-signs a token's first two segments with a different secret.
func resign(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	return parts[0] + "." + parts[1] + "." + sign(parts[0]+"."+parts[1], []byte("other-secret"))
}

func TestSession(t *testing.T) {
	now := time.Now()

	valid, err := SignToken(testClaims(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	expired, err := SignToken(testClaims(-time.Minute), testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"valid token", valid, true},
		{"expired token", expired, false},
		{"empty token", "", false},
		{"garbage token", "not-a-jwt", false},
		{"two segments", "abc.def", false},
		{"non-json payload", "aGVhZGVy.bm90anNvbg.c2ln", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(tt.token)
			if got := sess.Valid(now); got != tt.valid {
				t.Errorf("Session.Valid = %v, want %v", got, tt.valid)
			}
		})
	}

	// Claims are readable without verification.
	sess := NewSession(valid)
	if sess.Claims() == nil || sess.Claims().Email != "admin@jacms.local" {
		t.Errorf("Session.Claims() = %+v, want decoded claims", sess.Claims())
	}

	// A valid session expires once now passes exp.
	if sess.Valid(now.Add(2 * time.Hour)) {
		t.Error("Session.Valid should be false after expiry")
	}
}
