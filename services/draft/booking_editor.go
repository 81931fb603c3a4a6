// Package draft holds the screen-level editors that mutate the shared
// drafts field by field, validate them, and submit through the data
// access layer.
package draft

import (
	"context"

	"astromitra/models"
	"astromitra/services/booking"
	"astromitra/services/notification"
	"astromitra/state"
	"astromitra/utils"
)

// Booking editor messages. Validation runs in a fixed order; the first
// violated rule's message is surfaced and later rules are not evaluated.
const (
	MsgSelectDate       = "Please select date"
	MsgSelectStartTime  = "Please select start time"
	MsgSelectEndTime    = "Please select end time"
	MsgEnterDescription = "Please enter description"
	MsgUploadPhoto      = "Please upload your photo"
	MsgEnterFullName    = "Please enter your full name"
	MsgEnterBirthDate   = "Please enter your birth date"
	MsgEnterBirthTime   = "Please enter your birth time"
	MsgEnterBirthPlace  = "Please enter your birth place"
	MsgUploadKundli     = "Please upload your kundli image"
	MsgStartBeforeEnd   = "Start time should be less than end time."
	MsgPendingApproval  = "Please update pending approval status"
)

// BookingEditor drives the in-progress booking draft in the event slice.
type BookingEditor struct {
	State    *state.Store
	Bookings booking.BookingService
	Notifier notification.Notifier
}

// Begin seeds the draft for a new booking against one astrologer.
func (e *BookingEditor) Begin(userID string, astro models.Astrologer) {
	e.State.SetEventDraft(models.EventDraft{
		UserID:         userID,
		AstrologerID:   astro.ID,
		AstrologerName: astro.FullName,
		Rate:           astro.Rate,
	})
}

// Load seeds the draft from an existing booking for review or edit.
func (e *BookingEditor) Load(b models.Booking) {
	e.State.SetEventDraft(models.EventDraft{
		ID:             b.ID,
		UserID:         b.UserID,
		AstrologerID:   b.AstrologerID,
		AstrologerName: b.AstrologerName,
		Rate:           b.Rate,
		Date:           b.Date,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Description:    b.Description,
		Status:         b.Status,
		FullName:       b.FullName,
		BirthDate:      b.BirthDate,
		BirthTime:      b.BirthTime,
		BirthPlace:     b.BirthPlace,
		Photo:          b.Photo,
		Kundli:         b.Kundli,
	})
}

// Field mutators. Each writes one field of the shared draft.

func (e *BookingEditor) SetDate(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.Date = v })
}

func (e *BookingEditor) SetStartTime(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.StartTime = v })
}

func (e *BookingEditor) SetEndTime(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.EndTime = v })
}

func (e *BookingEditor) SetDescription(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.Description = v })
}

func (e *BookingEditor) SetPhoto(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.Photo = v })
}

func (e *BookingEditor) SetKundli(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.Kundli = v })
}

func (e *BookingEditor) SetFullName(v string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.FullName = v })
}

func (e *BookingEditor) SetBirthDetails(date, birthTime, place string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) {
		d.BirthDate = date
		d.BirthTime = birthTime
		d.BirthPlace = place
	})
}

// SetStatus records the professional's explicit accept/reject decision.
func (e *BookingEditor) SetStatus(status string) {
	e.State.UpdateEventDraft(func(d *models.EventDraft) { d.Status = status })
}

// ValidateEventDraft runs the required-field checks in their fixed order,
// then the time-ordering rule last.
func ValidateEventDraft(d models.EventDraft) error {
	checks := []struct {
		missing bool
		message string
	}{
		{d.Date == "", MsgSelectDate},
		{d.StartTime == "", MsgSelectStartTime},
		{d.EndTime == "", MsgSelectEndTime},
		{d.Description == "", MsgEnterDescription},
		{d.Photo == "", MsgUploadPhoto},
		{d.FullName == "", MsgEnterFullName},
		{d.BirthDate == "", MsgEnterBirthDate},
		{d.BirthTime == "", MsgEnterBirthTime},
		{d.BirthPlace == "", MsgEnterBirthPlace},
		{d.Kundli == "", MsgUploadKundli},
	}
	for _, c := range checks {
		if c.missing {
			return &utils.ValidationError{Message: c.message}
		}
	}
	if !utils.TimeOfDayBefore(d.StartTime, d.EndTime) {
		return &utils.ValidationError{Message: MsgStartBeforeEnd}
	}
	return nil
}

// BookNow validates the draft and creates the booking. The draft resets
// only on a successful submit; a failed one keeps it editable.
func (e *BookingEditor) BookNow(ctx context.Context) bool {
	d := e.State.EventDraft()
	if err := ValidateEventDraft(d); err != nil {
		e.Notifier.Notice(err.Error())
		return false
	}
	if !e.Bookings.CreateBooking(ctx, d) {
		return false
	}
	e.State.ResetEventDraft()
	return true
}

// Save validates and persists edits to an existing booking. A
// professional must have made an explicit accept/reject decision first:
// submitting while status is still waiting is rejected.
func (e *BookingEditor) Save(ctx context.Context) bool {
	d := e.State.EventDraft()
	if err := ValidateEventDraft(d); err != nil {
		e.Notifier.Notice(err.Error())
		return false
	}
	if e.State.UserType() == models.UserTypeProfessional && d.Status == models.BookingStatusWaiting {
		e.Notifier.Notice(MsgPendingApproval)
		return false
	}
	if !e.Bookings.UpdateBooking(ctx, d) {
		return false
	}
	e.State.ResetEventDraft()
	return true
}
