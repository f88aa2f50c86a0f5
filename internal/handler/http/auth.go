package http

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
)

// AuthHandler handles HTTP requests for the token endpoints.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Token handles POST /api/v1/auth/token. The request is form-encoded with
// username (the account email) and password fields; the response is the bare
// token object rather than the enveloped shape used elsewhere.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid form body: " + err.Error()},
		})
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// Refresh handles POST /api/v1/auth/refresh_token. The current token is
// presented as a bearer credential and a fresh one with a full lifetime is
// returned. The old token remains valid until its own expiry.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeUnauthorized(w, "could not validate credentials")
		return
	}

	fresh, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fresh)
}
