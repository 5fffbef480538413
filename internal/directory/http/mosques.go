package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/httpx"
)

// MosqueHandler serves the mosque listing and registration endpoints.
type MosqueHandler struct {
	MosqueService *service.MosqueService
}

type registerMosqueRequest struct {
	domain.Mosque

	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminName     string `json:"adminName"`
}

// HandleSearch serves GET /api/mosques.
func (h *MosqueHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	mosques, err := h.MosqueService.Search(ctx, q.Get("name"), q.Get("city"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to fetch mosques")
		return
	}

	writeSuccess(w, envelope{
		"mosques": mosques,
		"count":   len(mosques),
	})
}

// HandleGet serves GET /api/mosques/{id}: the mosque plus today's schedule
// and the next few events.
func (h *MosqueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.MosqueService.Get(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mosque not found")
			return
		}
		writeServiceError(ctx, w, err, "Failed to fetch mosque details")
		return
	}

	resp := envelope{
		"mosque":         detail.Mosque,
		"salahTimes":     detail.SalahTimes,
		"upcomingEvents": detail.UpcomingEvents,
	}
	if detail.SalahTimes != nil {
		resp["adhanTimes"] = adhanTimes(*detail.SalahTimes)
	}
	writeSuccess(w, resp)
}

// HandleRegister serves POST /api/mosques: the combined mosque plus admin
// account registration.
func (h *MosqueHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerMosqueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	mosque, _, err := h.MosqueService.Register(ctx, service.RegisterMosqueParams{
		Mosque: req.Mosque,
		Admin: service.RegisterParams{
			Email:    req.AdminEmail,
			Password: req.AdminPassword,
			Name:     req.AdminName,
		},
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create mosque")
		return
	}

	writeSuccess(w, envelope{
		"mosque":  mosque,
		"message": "Mosque registered successfully. Awaiting approval.",
	})
}

// HandleUpdate serves PUT /api/mosques/{id}. Sits behind AuthnMiddleware;
// the service enforces ownership.
func (h *MosqueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var m domain.Mosque
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	m.ID = r.PathValue("id")

	updated, err := h.MosqueService.Update(ctx, actor, m)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mosque not found")
			return
		}
		writeServiceError(ctx, w, err, "Failed to update mosque")
		return
	}

	writeSuccess(w, envelope{
		"mosque":  updated,
		"message": "Mosque updated successfully",
	})
}
