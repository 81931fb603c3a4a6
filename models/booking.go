package models

import "time"

// Booking statuses. Completed is never stored: it is derived at display
// time from an approved booking whose slot has already ended.
const (
	BookingStatusWaiting   = "waiting"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusDeleted   = "deleted"
	BookingStatusCompleted = "completed"
)

// Booking represents one scheduled consultation.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"userId" json:"userId"`
	AstrologerID   string    `bson:"astrologerId" json:"astrologerId"`
	AstrologerName string    `bson:"astrologerName" json:"astrologerName"`
	Rate           float64   `bson:"rate" json:"rate"` // rate snapshot at booking time
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime      string    `bson:"starttime" json:"starttime"`
	EndTime        string    `bson:"endtime" json:"endtime"`
	Description    string    `bson:"description" json:"description"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`

	// Requester identity snapshot taken when the booking was placed.
	FullName   string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	BirthDate  string `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	BirthTime  string `bson:"birthTime,omitempty" json:"birthTime,omitempty"`
	BirthPlace string `bson:"birthPlace,omitempty" json:"birthPlace,omitempty"`
	Photo      string `bson:"photo,omitempty" json:"photo,omitempty"`
	Kundli     string `bson:"kundli,omitempty" json:"kundli,omitempty"` // birth-chart image
}

// EventDraft is the in-progress booking edit buffer. It is never persisted
// as-is; a submit validates it and hands it to the booking service.
type EventDraft struct {
	ID             string  `json:"id,omitempty"`
	UserID         string  `json:"userId,omitempty"`
	AstrologerID   string  `json:"astrologerId,omitempty"`
	AstrologerName string  `json:"astrologerName,omitempty"`
	Rate           float64 `json:"rate,omitempty"`
	Date           string  `json:"date,omitempty"`
	StartTime      string  `json:"starttime,omitempty"`
	EndTime        string  `json:"endtime,omitempty"`
	Description    string  `json:"description,omitempty"`
	Status         string  `json:"status,omitempty"`
	FullName       string  `json:"fullName,omitempty"`
	BirthDate      string  `json:"birthDate,omitempty"`
	BirthTime      string  `json:"birthTime,omitempty"`
	BirthPlace     string  `json:"birthPlace,omitempty"`
	Photo          string  `json:"photo,omitempty"`
	Kundli         string  `json:"kundli,omitempty"`
	PhoneNumber    string  `json:"phoneNumber,omitempty"`
}

// Booking builds the persistable document from the draft. Status is left
// for the store layer to force to waiting on create.
func (d EventDraft) Booking() Booking {
	return Booking{
		ID:             d.ID,
		UserID:         d.UserID,
		AstrologerID:   d.AstrologerID,
		AstrologerName: d.AstrologerName,
		Rate:           d.Rate,
		Date:           d.Date,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		Description:    d.Description,
		Status:         d.Status,
		FullName:       d.FullName,
		BirthDate:      d.BirthDate,
		BirthTime:      d.BirthTime,
		BirthPlace:     d.BirthPlace,
		Photo:          d.Photo,
		Kundli:         d.Kundli,
	}
}
