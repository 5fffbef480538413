package masjidsdk

import "time"

// User mirrors the API's sanitized user payload.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	MasjidID  string    `json:"masjidId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

type Imam struct {
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

type Mosque struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state,omitempty"`
	Country     string      `json:"country"`
	PostalCode  string      `json:"postalCode,omitempty"`
	Latitude    float64     `json:"latitude,omitempty"`
	Longitude   float64     `json:"longitude,omitempty"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Imam        Imam        `json:"imam"`
	Images      []string    `json:"images,omitempty"`
	IsApproved  bool        `json:"isApproved"`
	AdminID     string      `json:"adminId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type SalahTimes struct {
	ID       string    `json:"id"`
	MasjidID string    `json:"masjidId"`
	Date     time.Time `json:"date"`
	Fajr     string    `json:"fajr"`
	Dhuhr    string    `json:"dhuhr"`
	Asr      string    `json:"asr"`
	Maghrib  string    `json:"maghrib"`
	Isha     string    `json:"isha"`
	Jumuah   string    `json:"jumuah,omitempty"`
}

type Event struct {
	ID               string    `json:"id"`
	MasjidID         string    `json:"masjidId"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Date             time.Time `json:"date"`
	Time             string    `json:"time,omitempty"`
	Image            string    `json:"image,omitempty"`
	IsRecurring      bool      `json:"isRecurring"`
	RecurringPattern string    `json:"recurringPattern,omitempty"`
}

// MosqueDetail is the GET /api/mosques/{id} payload.
type MosqueDetail struct {
	Mosque         Mosque      `json:"mosque"`
	SalahTimes     *SalahTimes `json:"salahTimes"`
	UpcomingEvents []Event     `json:"upcomingEvents"`
}

// RegisterMosqueParams carries the combined mosque plus admin registration
// request.
type RegisterMosqueParams struct {
	Mosque

	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminName     string `json:"adminName"`
}

// HealthChecks reports per-dependency health in a readiness response.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is the /livez and /readyz payload.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

type mosqueResponse struct {
	Success bool   `json:"success"`
	Mosque  Mosque `json:"mosque"`
	Message string `json:"message"`
}

type mosqueListResponse struct {
	Success bool     `json:"success"`
	Mosques []Mosque `json:"mosques"`
	Count   int      `json:"count"`
}

type mosqueDetailResponse struct {
	Success bool `json:"success"`
	MosqueDetail
}

type salahTimesResponse struct {
	Success    bool       `json:"success"`
	SalahTimes SalahTimes `json:"salahTimes"`
	Message    string     `json:"message"`
}

type eventResponse struct {
	Success bool   `json:"success"`
	Event   Event  `json:"event"`
	Message string `json:"message"`
}

type eventListResponse struct {
	Success bool    `json:"success"`
	Events  []Event `json:"events"`
	Count   int     `json:"count"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
