package domain

import "time"

type RecurringPattern string

const (
	RecurWeekly  RecurringPattern = "weekly"
	RecurMonthly RecurringPattern = "monthly"
	RecurYearly  RecurringPattern = "yearly"
)

func (p RecurringPattern) Valid() bool {
	switch p {
	case RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

type Event struct {
	ID               string           `json:"id" bson:"_id"`
	MasjidID         string           `json:"masjidId" bson:"masjid_id"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description,omitempty" bson:"description,omitempty"`
	Date             time.Time        `json:"date" bson:"date"`
	Time             string           `json:"time,omitempty" bson:"time,omitempty"` // "HH:MM" wall clock
	Image            string           `json:"image,omitempty" bson:"image,omitempty"`
	IsRecurring      bool             `json:"isRecurring" bson:"is_recurring"`
	RecurringPattern RecurringPattern `json:"recurringPattern,omitempty" bson:"recurring_pattern,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updated_at"`
}
