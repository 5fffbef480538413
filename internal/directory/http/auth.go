package http

import (
	"encoding/json"
	"net/http"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/jwtx"
)

// AuthHandler serves the credential endpoints.
type AuthHandler struct {
	AuthService  *service.AuthService
	SecureCookie bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	MasjidID string `json:"masjidId,omitempty"`
}

// HandleLogin serves POST /api/auth/login. A successful login returns the
// token in the body for API clients and sets it as an http-only cookie for
// the browser shell.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AuthTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwtx.DefaultTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.NoCache(w)
	writeSuccess(w, envelope{
		"user":    user,
		"token":   token,
		"message": "Login successful",
	})
}

// HandleRegister serves POST /api/auth/register. No token is issued; the new
// account logs in afterwards.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.AuthService.Register(ctx, service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
		MasjidID: req.MasjidID,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to register user")
		return
	}

	writeSuccess(w, envelope{
		"user":    user,
		"message": "User registered successfully",
	})
}
