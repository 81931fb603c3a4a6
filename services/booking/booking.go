package booking

import (
	"context"
	"sync"

	astroRepo "astromitra/database/repository/astrologer"
	bookingRepo "astromitra/database/repository/booking"
	userRepo "astromitra/database/repository/user"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/services/storage"
	"astromitra/state"
	"astromitra/utils"

	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings    bookingRepo.BookingRepository
	Users       userRepo.UserRepository
	Astrologers astroRepo.AstrologerRepository
	Storage     storage.StorageService
	State       *state.Store
	Notifier    notification.Notifier
	Push        notification.PushService
}

func (s *DefaultBookingService) fail(op string, err error) bool {
	utils.GetLogger().Error(op, zap.Error(err))
	s.Notifier.Notice(utils.GenericFailureNotice)
	return false
}

// uploadDraftImages commits the draft's photo and chart image in
// parallel, skipping fields that already hold a durable URL. Both
// uploads must succeed before the dependent write may proceed; a blob
// uploaded before the other upload fails is retained (accepted leak).
func (s *DefaultBookingService) uploadDraftImages(ctx context.Context, draft *models.EventDraft) error {
	type slot struct {
		value  *string
		result string
		err    error
	}
	var pending []*slot
	if draft.Photo != "" && !storage.IsRemoteURL(draft.Photo) {
		pending = append(pending, &slot{value: &draft.Photo})
	}
	if draft.Kundli != "" && !storage.IsRemoteURL(draft.Kundli) {
		pending = append(pending, &slot{value: &draft.Kundli})
	}
	if len(pending) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for _, p := range pending {
		wg.Add(1)
		go func(p *slot) {
			defer wg.Done()
			p.result, p.err = s.Storage.UploadImage(ctx, *p.value)
		}(p)
	}
	wg.Wait()

	for _, p := range pending {
		if p.err != nil {
			return p.err
		}
		*p.value = p.result
	}
	return nil
}

// CreateBooking uploads images first, then writes the document with
// status forced to waiting and a server-assigned creation timestamp, and
// notifies the astrologer.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, draft models.EventDraft) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if err := s.uploadDraftImages(ctx, &draft); err != nil {
			s.fail("CreateBooking", err)
			return nil
		}

		b := draft.Booking()
		if err := s.Bookings.Create(&b); err != nil {
			s.fail("CreateBooking", &utils.PersistenceError{Op: "create booking", Err: err})
			return nil
		}

		s.notifyAstrologer(b, "New booking request", "You have a new consultation request", "booking_created")
		ok = true
		return nil
	})
	return ok
}

// FetchMyBookings queries by userId for requesters and astrologerId for
// professionals, newest first, and replaces the cached list wholesale.
func (s *DefaultBookingService) FetchMyBookings(ctx context.Context) bool {
	ok := false
	_ = s.State.Busy(func() error {
		var (
			list []models.Booking
			err  error
		)
		if s.State.UserType() == models.UserTypeProfessional {
			prof := s.State.Professional()
			if prof == nil {
				s.Notifier.Notice((&utils.NotFoundError{Entity: "User"}).Error())
				return nil
			}
			list, err = s.Bookings.ListByAstrologer(prof.ID)
		} else {
			profile := s.State.Profile()
			if profile == nil {
				s.Notifier.Notice((&utils.NotFoundError{Entity: "User"}).Error())
				return nil
			}
			list, err = s.Bookings.ListByUser(profile.ID)
		}
		if err != nil {
			s.fail("FetchMyBookings", err)
			return nil
		}
		s.State.SetBookings(list)
		ok = true
		return nil
	})
	return ok
}

// UpdateBooking re-uploads only image fields that still hold local URIs,
// writes the patch, then refreshes the booking list.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, draft models.EventDraft) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if err := s.uploadDraftImages(ctx, &draft); err != nil {
			s.fail("UpdateBooking", err)
			return nil
		}

		fields := map[string]any{
			"date":        draft.Date,
			"starttime":   draft.StartTime,
			"endtime":     draft.EndTime,
			"description": draft.Description,
			"fullName":    draft.FullName,
			"birthDate":   draft.BirthDate,
			"birthTime":   draft.BirthTime,
			"birthPlace":  draft.BirthPlace,
			"photo":       draft.Photo,
			"kundli":      draft.Kundli,
		}
		if draft.Status != "" {
			fields["status"] = draft.Status
		}
		if err := s.Bookings.UpdateFields(draft.ID, fields); err != nil {
			s.fail("UpdateBooking", &utils.PersistenceError{Op: "update booking", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		return s.FetchMyBookings(ctx)
	}
	return false
}

// SoftDeleteBooking marks the booking deleted, then refreshes the list.
func (s *DefaultBookingService) SoftDeleteBooking(ctx context.Context, id string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if err := s.Bookings.SoftDelete(id); err != nil {
			s.fail("SoftDeleteBooking", &utils.PersistenceError{Op: "soft delete booking", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		return s.FetchMyBookings(ctx)
	}
	return false
}

// UpdateStatus patches only the status field, refreshes the list, and
// notifies the requester of the decision.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if err := s.Bookings.UpdateStatus(id, status); err != nil {
			s.fail("UpdateStatus", &utils.PersistenceError{Op: "update booking status", Err: err})
			return nil
		}
		s.State.PatchBooking(id, func(b *models.Booking) {
			b.Status = status
		})
		s.notifyRequester(id, status)
		ok = true
		return nil
	})
	if ok {
		return s.FetchMyBookings(ctx)
	}
	return false
}

func (s *DefaultBookingService) notifyAstrologer(b models.Booking, title, body, kind string) {
	a, err := s.Astrologers.GetByID(b.AstrologerID)
	if err != nil || a == nil {
		utils.GetLogger().Warn("could not resolve astrologer for push", zap.String("astrologerId", b.AstrologerID), zap.Error(err))
		return
	}
	s.Push.NotifyBooking(a.PushToken, title, body, b.ID, kind)
}

func (s *DefaultBookingService) notifyRequester(bookingID, status string) {
	var target *models.Booking
	for _, b := range s.State.Bookings() {
		if b.ID == bookingID {
			target = &b
			break
		}
	}
	if target == nil {
		return
	}
	u, err := s.Users.GetByID(target.UserID)
	if err != nil || u == nil {
		utils.GetLogger().Warn("could not resolve user for push", zap.String("userId", target.UserID), zap.Error(err))
		return
	}
	s.Push.NotifyBooking(u.PushToken, "Booking "+status, "Your consultation request was "+status, bookingID, "status_changed")
}
