package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SalahTimes holds one day's prayer schedule for a mosque. Times are "HH:MM"
// local wall-clock strings; Date is truncated to midnight UTC so the
// (MasjidID, Date) pair is unique per calendar day.
type SalahTimes struct {
	ID        string    `json:"id" bson:"_id"`
	MasjidID  string    `json:"masjidId" bson:"masjid_id"`
	Date      time.Time `json:"date" bson:"date"`
	Fajr      string    `json:"fajr" bson:"fajr"`
	Dhuhr     string    `json:"dhuhr" bson:"dhuhr"`
	Asr       string    `json:"asr" bson:"asr"`
	Maghrib   string    `json:"maghrib" bson:"maghrib"`
	Isha      string    `json:"isha" bson:"isha"`
	Jumuah    string    `json:"jumuah,omitempty" bson:"jumuah,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Validate checks the five required times are well-formed clock strings.
func (s SalahTimes) Validate() error {
	for name, v := range map[string]string{
		"fajr":    s.Fajr,
		"dhuhr":   s.Dhuhr,
		"asr":     s.Asr,
		"maghrib": s.Maghrib,
		"isha":    s.Isha,
	} {
		if !clockPattern.MatchString(v) {
			return fmt.Errorf("invalid %s time %q", name, v)
		}
	}
	if s.Jumuah != "" && !clockPattern.MatchString(s.Jumuah) {
		return fmt.Errorf("invalid jumuah time %q", s.Jumuah)
	}
	return nil
}

// NormalizeDate truncates a timestamp to midnight UTC, the canonical form for
// the per-day uniqueness key.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var clockPattern = regexp.MustCompile(`^[0-2]?\d:[0-5]\d$`)

// AdhanOffset is how long before iqamah the call to prayer is announced.
const AdhanOffset = 15 * time.Minute

// AdhanTime derives the adhan announcement time from an iqamah "HH:MM"
// string, wrapping across midnight. The second return is false when the
// input is not a valid clock string.
func AdhanTime(iqamah string) (string, bool) {
	if !clockPattern.MatchString(iqamah) {
		return "", false
	}

	var h, m int
	if _, err := fmt.Sscanf(iqamah, "%d:%d", &h, &m); err != nil || h > 23 {
		return "", false
	}

	total := h*60 + m - int(AdhanOffset.Minutes())
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), true
}
