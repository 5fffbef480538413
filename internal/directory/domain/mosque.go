package domain

import "time"

type ContactInfo struct {
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
}

type Imam struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

type Mosque struct {
	ID          string      `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Address     string      `json:"address" bson:"address"`
	City        string      `json:"city" bson:"city"`
	State       string      `json:"state,omitempty" bson:"state,omitempty"`
	Country     string      `json:"country" bson:"country"`
	PostalCode  string      `json:"postalCode,omitempty" bson:"postal_code,omitempty"`
	Latitude    float64     `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   float64     `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ContactInfo ContactInfo `json:"contactInfo" bson:"contact_info"`
	Imam        Imam        `json:"imam" bson:"imam"`
	Images      []string    `json:"images,omitempty" bson:"images,omitempty"`
	IsApproved  bool        `json:"isApproved" bson:"is_approved"` // listings stay hidden until approved
	AdminID     string      `json:"adminId" bson:"admin_id"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updated_at"`
}
