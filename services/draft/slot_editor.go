package draft

import (
	"context"

	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/services/slot"
	"astromitra/state"
	"astromitra/utils"
)

// Slot editor messages, surfaced by the first failing rule.
const (
	MsgSelectSlotType     = "Please select slot type"
	MsgSelectSlotDate     = "Please select date"
	MsgSelectStartDate    = "Please select start date"
	MsgSelectEndDate      = "Please select end date"
	MsgSelectRepeatDays   = "Please select repeat days"
	MsgStartDateBeforeEnd = "Start date should be less than end date"
)

// SlotEditor drives the in-progress availability draft.
type SlotEditor struct {
	State    *state.Store
	Slots    slot.SlotService
	Notifier notification.Notifier
}

// Begin seeds a fresh draft for the professional.
func (e *SlotEditor) Begin(astrologerID string) {
	e.State.ResetSlotDraft()
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) { d.AstrologerID = astrologerID })
}

// Load seeds the draft from an existing slot for editing.
func (e *SlotEditor) Load(s models.Slot) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) {
		*d = models.SlotDraft{
			ID:           s.ID,
			AstrologerID: s.AstrologerID,
			Type:         s.Type,
			Date:         s.Date,
			StartDate:    s.StartDate,
			EndDate:      s.EndDate,
			RepeatDays:   s.RepeatDays,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
		}
	})
}

// SetType selects the slot definition type, which gates the mandatory
// fields.
func (e *SlotEditor) SetType(t string) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) { d.Type = t })
}

func (e *SlotEditor) SetDate(v string) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) { d.Date = v })
}

func (e *SlotEditor) SetDateRange(start, end string) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) {
		d.StartDate = start
		d.EndDate = end
	})
}

func (e *SlotEditor) SetRepeatDays(days []string) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) { d.RepeatDays = days })
}

func (e *SlotEditor) SetTimes(start, end string) {
	e.State.UpdateSlotDraft(func(d *models.SlotDraft) {
		d.StartTime = start
		d.EndTime = end
	})
}

// ValidateSlotDraft runs the save rules in order: type-specific required
// fields, the Repeat date-range ordering, time presence, and the
// time-of-day ordering last, uniform across all types. The first failing
// rule wins.
func ValidateSlotDraft(d models.SlotDraft) error {
	switch d.Type {
	case models.SlotTypeCustom:
		if d.Date == "" {
			return &utils.ValidationError{Message: MsgSelectSlotDate}
		}
	case models.SlotTypeRepeat:
		if d.StartDate == "" {
			return &utils.ValidationError{Message: MsgSelectStartDate}
		}
		if d.EndDate == "" {
			return &utils.ValidationError{Message: MsgSelectEndDate}
		}
		if !utils.DateOnOrBefore(d.StartDate, d.EndDate) {
			return &utils.ValidationError{Message: MsgStartDateBeforeEnd}
		}
	case models.SlotTypeWeekly:
		if len(d.RepeatDays) == 0 {
			return &utils.ValidationError{Message: MsgSelectRepeatDays}
		}
	default:
		return &utils.ValidationError{Message: MsgSelectSlotType}
	}

	if d.StartTime == "" {
		return &utils.ValidationError{Message: MsgSelectStartTime}
	}
	if d.EndTime == "" {
		return &utils.ValidationError{Message: MsgSelectEndTime}
	}
	if !utils.TimeOfDayBefore(d.StartTime, d.EndTime) {
		return &utils.ValidationError{Message: MsgStartBeforeEnd}
	}
	return nil
}

// Save validates the draft and persists it. On success the service
// resets the draft; the slot list is re-fetched by the listing screen on
// focus rather than patched here.
func (e *SlotEditor) Save(ctx context.Context) bool {
	d := e.State.SlotDraft()
	if err := ValidateSlotDraft(d); err != nil {
		e.Notifier.Notice(err.Error())
		return false
	}
	return e.Slots.SaveSlot(ctx, d)
}
