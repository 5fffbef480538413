package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/httpx"
)

// SalahTimesHandler serves the prayer-time schedule endpoints.
type SalahTimesHandler struct {
	SalahTimesService *service.SalahTimesService
}

// HandleGet serves GET /api/salah-times?masjidId&date. Date defaults to
// today; any RFC 3339 timestamp or plain YYYY-MM-DD within the day selects
// that day.
func (h *SalahTimesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	masjidID := q.Get("masjidId")
	if masjidID == "" {
		writeError(w, http.StatusBadRequest, "Masjid ID is required")
		return
	}

	date := time.Now().UTC()
	if raw := q.Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		date = parsed
	}

	times, err := h.SalahTimesService.Get(ctx, masjidID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Prayer times not found for this date")
			return
		}
		writeServiceError(ctx, w, err, "Failed to fetch prayer times")
		return
	}

	writeSuccess(w, envelope{
		"salahTimes": times,
		"adhanTimes": adhanTimes(times),
	})
}

// adhanTimes derives the call-to-prayer schedule from the iqamah times.
// Entries that fail the clock check are left out rather than erroring; the
// schedule itself was already validated on write.
func adhanTimes(st domain.SalahTimes) map[string]string {
	out := map[string]string{}
	for prayer, iqamah := range map[string]string{
		"fajr":    st.Fajr,
		"dhuhr":   st.Dhuhr,
		"asr":     st.Asr,
		"maghrib": st.Maghrib,
		"isha":    st.Isha,
	} {
		if adhan, ok := domain.AdhanTime(iqamah); ok {
			out[prayer] = adhan
		}
	}
	return out
}

// HandleUpsert serves POST /api/salah-times. Sits behind AuthnMiddleware.
func (h *SalahTimesHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var st domain.SalahTimes
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	stored, created, err := h.SalahTimesService.Upsert(ctx, actor, st)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to save prayer times")
		return
	}

	message := "Prayer times updated successfully"
	if created {
		message = "Prayer times created successfully"
	}
	writeSuccess(w, envelope{
		"salahTimes": stored,
		"message":    message,
	})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
