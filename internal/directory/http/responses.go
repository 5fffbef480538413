package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// envelope is the response shape every JSON endpoint uses. Success payloads
// set Success plus endpoint-specific keys; failures carry only an error
// string.
type envelope map[string]any

func writeSuccess(w http.ResponseWriter, body envelope) {
	body["success"] = true
	httpx.WriteJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, envelope{
		"success": false,
		"error":   msg,
	})
}

// writeServiceError maps domain errors onto the wire contract. fallback is
// the endpoint's own 500 message; internal detail never reaches the client.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	log := slogx.FromContext(ctx)

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrUnavailable):
		log.Error("store unreachable", "err", err)
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
	default:
		log.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
