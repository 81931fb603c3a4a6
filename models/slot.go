package models

import "time"

// Slot definition types. Exactly one of {Date, StartDate+EndDate,
// RepeatDays} is populated, matching the type.
const (
	SlotTypeCustom = "Custom"
	SlotTypeRepeat = "Repeat"
	SlotTypeWeekly = "Weekly"
)

// Slot is a professional's availability definition.
type Slot struct {
	ID           string    `bson:"id" json:"id"`
	AstrologerID string    `bson:"astrologerId" json:"astrologerId"`
	Type         string    `bson:"type" json:"type"`
	Date         string    `bson:"date,omitempty" json:"date,omitempty"`           // Custom: single day
	StartDate    string    `bson:"startdate,omitempty" json:"startdate,omitempty"` // Repeat: range start
	EndDate      string    `bson:"enddate,omitempty" json:"enddate,omitempty"`     // Repeat: range end
	RepeatDays   []string  `bson:"repeatdays,omitempty" json:"repeatdays,omitempty"`
	StartTime    string    `bson:"starttime" json:"starttime"`
	EndTime      string    `bson:"endtime" json:"endtime"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotDraft is the in-progress availability edit buffer.
type SlotDraft struct {
	ID           string   `json:"id,omitempty"`
	AstrologerID string   `json:"astrologerId,omitempty"`
	Type         string   `json:"type,omitempty"`
	Date         string   `json:"date,omitempty"`
	StartDate    string   `json:"startdate,omitempty"`
	EndDate      string   `json:"enddate,omitempty"`
	RepeatDays   []string `json:"repeatdays,omitempty"`
	StartTime    string   `json:"starttime,omitempty"`
	EndTime      string   `json:"endtime,omitempty"`
}

// Slot builds the persistable document from the draft, dropping fields
// that do not belong to the chosen type.
func (d SlotDraft) Slot() Slot {
	s := Slot{
		ID:           d.ID,
		AstrologerID: d.AstrologerID,
		Type:         d.Type,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
	}
	switch d.Type {
	case SlotTypeCustom:
		s.Date = d.Date
	case SlotTypeRepeat:
		s.StartDate = d.StartDate
		s.EndDate = d.EndDate
	case SlotTypeWeekly:
		s.RepeatDays = d.RepeatDays
	}
	return s
}
