package slot

import (
	"context"

	slotRepo "astromitra/database/repository/slot"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/state"
	"astromitra/utils"

	"go.uber.org/zap"
)

// SlotService manages a professional's availability definitions. The
// slot list is re-fetched by the listing screen on focus; saves do not
// patch it optimistically.
type SlotService interface {
	// SaveSlot persists a validated draft: update when it carries an id,
	// create otherwise.
	SaveSlot(ctx context.Context, draft models.SlotDraft) bool
	// FetchSlots replaces the cached slot list wholesale.
	FetchSlots(ctx context.Context, astrologerID string) bool
	// DeleteSlot removes a slot definition and refreshes the list.
	DeleteSlot(ctx context.Context, id string) bool
}

// DefaultSlotService is the production implementation.
type DefaultSlotService struct {
	Slots    slotRepo.SlotRepository
	State    *state.Store
	Notifier notification.Notifier
}

func (s *DefaultSlotService) fail(op string, err error) bool {
	utils.GetLogger().Error(op, zap.Error(err))
	s.Notifier.Notice(utils.GenericFailureNotice)
	return false
}

// SaveSlot persists the draft and resets it on success.
func (s *DefaultSlotService) SaveSlot(ctx context.Context, draft models.SlotDraft) bool {
	ok := false
	_ = s.State.Busy(func() error {
		sl := draft.Slot()
		var err error
		if sl.ID != "" {
			err = s.Slots.Update(&sl)
		} else {
			err = s.Slots.Create(&sl)
		}
		if err != nil {
			s.fail("SaveSlot", &utils.PersistenceError{Op: "save slot", Err: err})
			return nil
		}
		s.State.ResetSlotDraft()
		ok = true
		return nil
	})
	return ok
}

// FetchSlots replaces the cached slot list wholesale, newest first.
func (s *DefaultSlotService) FetchSlots(ctx context.Context, astrologerID string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		list, err := s.Slots.ListByOwner(astrologerID)
		if err != nil {
			s.fail("FetchSlots", err)
			return nil
		}
		s.State.SetSlots(list)
		ok = true
		return nil
	})
	return ok
}

// DeleteSlot removes the definition, then refreshes the owner's list.
func (s *DefaultSlotService) DeleteSlot(ctx context.Context, id string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if err := s.Slots.Delete(id); err != nil {
			s.fail("DeleteSlot", &utils.PersistenceError{Op: "delete slot", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		prof := s.State.Professional()
		if prof != nil {
			return s.FetchSlots(ctx, prof.ID)
		}
	}
	return ok
}
