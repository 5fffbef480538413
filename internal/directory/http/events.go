package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/pkg/httpx"
)

// EventHandler serves the community event endpoints.
type EventHandler struct {
	EventService *service.EventService
}

// HandleList serves GET /api/events?masjidId&upcoming&limit.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		limit = n
	}

	events, err := h.EventService.List(ctx, service.ListEventsParams{
		MasjidID: q.Get("masjidId"),
		Upcoming: q.Get("upcoming") == "true",
		Limit:    limit,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to fetch events")
		return
	}

	writeSuccess(w, envelope{
		"events": events,
		"count":  len(events),
	})
}

// HandleCreate serves POST /api/events. Sits behind AuthnMiddleware.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var e domain.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	created, err := h.EventService.Create(ctx, actor, e)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create event")
		return
	}

	writeSuccess(w, envelope{
		"event":   created,
		"message": "Event created successfully",
	})
}
