package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/timberpunk/timberpunk/internal/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	TokenTTL  time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusUnprocessableEntity, "email and password required")
		return
	}

	admin, err := auth.Authenticate(r.Context(), h.DB, req.Email, req.Password)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if admin == nil {
		// Unknown email and wrong password are deliberately indistinguishable.
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		unauthorized(w, "incorrect email or password")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, admin.Email, h.TokenTTL)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin logged in", "email", admin.Email)
	jsonResponse(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := GetAdmin(r.Context())
	if admin == nil {
		unauthorized(w, "could not validate credentials")
		return
	}
	jsonResponse(w, http.StatusOK, admin)
}
