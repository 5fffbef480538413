package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store/drivers/memory"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/jwtx"
)

func newTestRouter(t *testing.T, st *memory.Store) *Router {
	t.Helper()

	signer := &jwtx.Signer{
		Secret: []byte("test-secret"),
		Issuer: "masjidhub-test",
		TTL:    time.Hour,
	}
	logger := slog.New(slog.DiscardHandler)

	r := NewRouter(signer, "test", st, logger, false,
		httpx.NewMetrics("test", prometheus.NewRegistry()))
	r.AuthService = &service.AuthService{Store: st, Signer: signer}
	r.MosqueService = &service.MosqueService{Store: st}
	r.SalahTimesService = &service.SalahTimesService{Store: st}
	r.EventService = &service.EventService{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

// registerMosque drives the combined registration endpoint and returns the
// new mosque ID plus a token for its admin account.
func registerMosque(t *testing.T, r *Router, name, adminEmail string) (string, string) {
	t.Helper()

	rec, body := doJSON(t, r, http.MethodPost, "/api/mosques", map[string]any{
		"name":          name,
		"address":       "1 Crescent Rd",
		"city":          "Lakemba",
		"country":       "Australia",
		"adminEmail":    adminEmail,
		"adminPassword": "correct horse battery staple",
		"adminName":     "Admin",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Mosque registered successfully. Awaiting approval.", body["message"])

	mosque, ok := body["mosque"].(map[string]any)
	require.True(t, ok, "response carries the mosque")
	id, _ := mosque["id"].(string)
	require.NotEmpty(t, id)

	rec, body = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminEmail,
		"password": "correct horse battery staple",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	return id, token
}

func TestLoginFlow(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	rec, body := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "imam@masjid.org",
		"password": "correct horse battery staple",
		"name":     "Imam",
		"masjidId": "masjid-001",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	registered, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "masjid-001", registered["masjidId"])

	rec, body = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "imam@masjid.org",
		"password": "correct horse battery staple",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "imam@masjid.org", user["email"])
	assert.NotContains(t, rec.Body.String(), "password_hash")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpx.AuthTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login sets the auth cookie")
	assert.Equal(t, body["token"], cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(jwtx.DefaultTokenTTL.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain http in dev")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLoginRejections(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	_, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "imam@masjid.org",
		"password": "correct horse battery staple",
		"name":     "Imam",
	}, "")

	t.Run("missing fields", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
			"email": "imam@masjid.org",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Email and password are required", body["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "imam@masjid.org",
			"password": "nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", body["error"])
	})

	t.Run("unknown email reads the same", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "nobody@masjid.org",
			"password": "nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", body["error"])
	})
}

func TestRegisterConflict(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	payload := map[string]any{
		"email":    "imam@masjid.org",
		"password": "correct horse battery staple",
		"name":     "Imam",
	}
	rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, r, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", body["error"])
}

func TestStoreUnavailable(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)
	st.SetAvailable(false)

	rec, body := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "imam@masjid.org",
		"password": "correct horse battery staple",
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database unavailable", body["error"])

	rec, body = doJSON(t, r, http.MethodGet, "/api/mosques", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database unavailable", body["error"])
}

func TestMosqueEndpoints(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	id, token := registerMosque(t, r, "Lakemba Mosque", "admin@lakemba.org")

	t.Run("detail by id", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodGet, "/api/mosques/"+id, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		mosque := body["mosque"].(map[string]any)
		assert.Equal(t, "Lakemba Mosque", mosque["name"])
		assert.Equal(t, false, mosque["isApproved"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodGet, "/api/mosques/missing", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Mosque not found", body["error"])
	})

	t.Run("search hides unapproved listings", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodGet, "/api/mosques?name=Lakemba", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), body["count"])
	})

	t.Run("update requires a token", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPut, "/api/mosques/"+id, map[string]any{
			"name": "Renamed",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Authentication required", body["error"])
	})

	t.Run("owner updates", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPut, "/api/mosques/"+id, map[string]any{
			"name":    "Lakemba Mosque",
			"address": "2 Crescent Rd",
			"city":    "Lakemba",
			"country": "Australia",
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Mosque updated successfully", body["message"])
		mosque := body["mosque"].(map[string]any)
		assert.Equal(t, "2 Crescent Rd", mosque["address"])
	})

	t.Run("stranger is refused", func(t *testing.T) {
		_, other := registerMosque(t, r, "Auburn Gallipoli Mosque", "admin@auburn.org")
		rec, body := doJSON(t, r, http.MethodPut, "/api/mosques/"+id, map[string]any{
			"name":    "Hijacked",
			"address": "1 Crescent Rd",
			"city":    "Lakemba",
			"country": "Australia",
		}, other)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Forbidden", body["error"])
	})
}

func TestSalahTimesEndpoints(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	id, token := registerMosque(t, r, "Lakemba Mosque", "admin@lakemba.org")

	t.Run("masjid id required", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodGet, "/api/salah-times", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Masjid ID is required", body["error"])
	})

	t.Run("no schedule yet", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodGet, "/api/salah-times?masjidId="+id, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Prayer times not found for this date", body["error"])
	})

	payload := map[string]any{
		"masjidId": id,
		"date":     "2026-06-14T00:00:00Z",
		"fajr":     "05:30",
		"dhuhr":    "12:15",
		"asr":      "15:45",
		"maghrib":  "17:05",
		"isha":     "18:30",
	}

	t.Run("first write creates", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/salah-times", payload, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Prayer times created successfully", body["message"])
	})

	t.Run("second write updates", func(t *testing.T) {
		payload["fajr"] = "05:25"
		rec, body := doJSON(t, r, http.MethodPost, "/api/salah-times", payload, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Prayer times updated successfully", body["message"])
		times := body["salahTimes"].(map[string]any)
		assert.Equal(t, "05:25", times["fajr"])
	})

	t.Run("read back by plain date", func(t *testing.T) {
		path := fmt.Sprintf("/api/salah-times?masjidId=%s&date=2026-06-14", id)
		rec, body := doJSON(t, r, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		times := body["salahTimes"].(map[string]any)
		assert.Equal(t, "05:25", times["fajr"])

		adhan := body["adhanTimes"].(map[string]any)
		assert.Equal(t, "05:10", adhan["fajr"], "adhan runs 15 minutes before iqamah")
		assert.Equal(t, "12:00", adhan["dhuhr"])
	})

	t.Run("write requires a token", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/salah-times", payload, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", body["error"])
	})
}

func TestEventEndpoints(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	id, token := registerMosque(t, r, "Lakemba Mosque", "admin@lakemba.org")

	rec, body := doJSON(t, r, http.MethodPost, "/api/events", map[string]any{
		"masjidId": id,
		"title":    "Friday Halaqa",
		"date":     "2026-09-11T00:00:00Z",
		"time":     "19:00",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Event created successfully", body["message"])

	rec, body = doJSON(t, r, http.MethodGet, "/api/events?masjidId="+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(1), body["count"])

	t.Run("create requires a token", func(t *testing.T) {
		rec, body := doJSON(t, r, http.MethodPost, "/api/events", map[string]any{
			"masjidId": id,
			"title":    "Open Day",
			"date":     "2026-09-20T00:00:00Z",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", body["error"])
	})
}

func TestAdminGate(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	_, token := registerMosque(t, r, "Lakemba Mosque", "admin@lakemba.org")

	t.Run("login page is public", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodGet, "/login", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<form")
	})

	t.Run("anonymous browser is redirected", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodGet, "/admin", nil, "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	})

	t.Run("cookie admits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AuthTokenCookie, Value: token})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "admin@lakemba.org")
	})
}

func TestSystemEndpoints(t *testing.T) {
	st := memory.NewStore()
	r := newTestRouter(t, st)

	rec, body := doJSON(t, r, http.MethodGet, "/livez", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = doJSON(t, r, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	st.SetAvailable(false)
	rec, body = doJSON(t, r, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])

	rec, _ = doJSON(t, r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
