package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"jacms/internal/auth"
	"jacms/internal/middleware"
	"jacms/internal/store"
)

// Auth groups the token-issuance and 2FA handlers.
type Auth struct {
	userStore *store.UserStore
	secret    []byte
	tokenTTL  time.Duration
}

// NewAuth creates an Auth handler group.
func NewAuth(userStore *store.UserStore, secret []byte, tokenTTL time.Duration) *Auth {
	return &Auth{userStore: userStore, secret: secret, tokenTTL: tokenTTL}
}

// loginRequest is the JSON payload for POST /api/auth/login.
// TOTPCode is required once the user has enrolled in 2FA.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

// Login verifies credentials (and the TOTP code for enrolled users) and
// returns a signed bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := a.userStore.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	// Same message for unknown email and bad password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		respondErr(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(req.TOTPCode, *user.TOTPSecret) {
			respondErr(w, http.StatusUnauthorized, "Invalid two-factor code")
			return
		}
	}

	now := time.Now()
	token, err := auth.SignToken(auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(a.tokenTTL).Unix(),
	}, a.secret)
	if err != nil {
		slog.Error("sign token failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	slog.Info("user logged in", "email", user.Email)
	respond(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": now.Add(a.tokenTTL).Unix(),
	})
}

// TwoFASetup generates a TOTP secret for the authenticated user and
// returns it with a QR provisioning image (base64 PNG).
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "JA-CMS",
		AccountName: claims.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	if err := a.userStore.SetTOTPSecret(claims.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"secret":  key.Secret(),
		"qr_png":  base64.StdEncoding.EncodeToString(qrPNG),
		"otp_url": key.URL(),
	})
}

// twoFAVerifyRequest is the JSON payload for POST /api/auth/2fa/verify.
type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify checks the first TOTP code after setup and enables 2FA for
// the user. Subsequent logins require a code.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var req twoFAVerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := a.userStore.FindByID(claims.UserID)
	if err != nil || user == nil {
		slog.Error("2fa verify lookup failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	if user.TOTPSecret == nil {
		respondErr(w, http.StatusBadRequest, "Two-factor setup has not been started")
		return
	}

	if !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		respondErr(w, http.StatusBadRequest, "Invalid two-factor code")
		return
	}

	if err := a.userStore.EnableTOTP(claims.UserID); err != nil {
		slog.Error("enable totp failed", "error", err)
		respondErr(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	slog.Info("2fa enabled", "email", user.Email)
	respond(w, http.StatusOK, map[string]any{"enabled": true})
}
