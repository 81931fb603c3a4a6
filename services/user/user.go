package user

import (
	"context"
	"sync"

	astroRepo "astromitra/database/repository/astrologer"
	userRepo "astromitra/database/repository/user"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/services/storage"
	"astromitra/state"
	"astromitra/utils"

	"go.uber.org/zap"
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Users       userRepo.UserRepository
	Astrologers astroRepo.AstrologerRepository
	Storage     storage.StorageService
	State       *state.Store
	Notifier    notification.Notifier
}

// fail funnels an unexpected failure: log, notice, false. The busy flag
// is cleared by the Busy wrapper around every operation.
func (s *DefaultUserService) fail(op string, err error) bool {
	utils.GetLogger().Error(op, zap.Error(err))
	s.Notifier.Notice(utils.GenericFailureNotice)
	return false
}

// CreateAccount writes a new account document for the authenticated
// identity into the collection matching the current user type.
func (s *DefaultUserService) CreateAccount(ctx context.Context, id, phone, email, fullName string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if s.State.UserType() == models.UserTypeProfessional {
			a := &models.Astrologer{ID: id, PhoneNumber: phone, Email: email, FullName: fullName}
			if err := s.Astrologers.Create(a); err != nil {
				s.fail("CreateAccount", &utils.PersistenceError{Op: "create astrologer", Err: err})
				return nil
			}
			s.State.SetProfessional(a)
		} else {
			u := &models.User{ID: id, PhoneNumber: phone, Email: email, FullName: fullName}
			if err := s.Users.Create(u); err != nil {
				s.fail("CreateAccount", &utils.PersistenceError{Op: "create user", Err: err})
				return nil
			}
			s.State.SetProfile(u)
		}
		ok = true
		return nil
	})
	return ok
}

// UserExists checks the type-specific collection by phone equality and
// surfaces a "does not exist" notice on absence, so no OTP is sent to an
// unregistered number.
func (s *DefaultUserService) UserExists(ctx context.Context, phone string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		var found bool
		if s.State.UserType() == models.UserTypeProfessional {
			a, err := s.Astrologers.GetByPhone(phone)
			if err != nil {
				s.fail("UserExists", err)
				return nil
			}
			found = a != nil
		} else {
			u, err := s.Users.GetByPhone(phone)
			if err != nil {
				s.fail("UserExists", err)
				return nil
			}
			found = u != nil
		}
		if !found {
			notice := (&utils.NotFoundError{Entity: "User"}).Error()
			utils.GetLogger().Info("UserExists: no match", zap.String("phone", phone))
			s.Notifier.Notice(notice)
			return nil
		}
		ok = true
		return nil
	})
	return ok
}

// FetchCurrentUser reads the identity's document from the type-specific
// collection and replaces the profile entity in cache.
func (s *DefaultUserService) FetchCurrentUser(ctx context.Context, id string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if s.State.UserType() == models.UserTypeProfessional {
			a, err := s.Astrologers.GetByID(id)
			if err != nil {
				s.fail("FetchCurrentUser", err)
				return nil
			}
			if a == nil {
				s.Notifier.Notice((&utils.NotFoundError{Entity: "User"}).Error())
				return nil
			}
			s.State.SetProfessional(a)
		} else {
			u, err := s.Users.GetByID(id)
			if err != nil {
				s.fail("FetchCurrentUser", err)
				return nil
			}
			if u == nil {
				s.Notifier.Notice((&utils.NotFoundError{Entity: "User"}).Error())
				return nil
			}
			s.State.SetProfile(u)
		}
		ok = true
		return nil
	})
	return ok
}

// FetchAstrologers replaces the astrologer list wholesale; no incremental
// merge.
func (s *DefaultUserService) FetchAstrologers(ctx context.Context) bool {
	ok := false
	_ = s.State.Busy(func() error {
		list, err := s.Astrologers.GetAll()
		if err != nil {
			s.fail("FetchAstrologers", err)
			return nil
		}
		s.State.SetAstrologers(list)
		ok = true
		return nil
	})
	return ok
}

// FetchAstrologerDetail reads the profile document and its reviews
// concurrently; both must resolve before the result is assembled.
func (s *DefaultUserService) FetchAstrologerDetail(ctx context.Context, id string) *models.AstrologerDetail {
	var detail *models.AstrologerDetail
	_ = s.State.Busy(func() error {
		var (
			wg        sync.WaitGroup
			profile   *models.Astrologer
			reviews   []models.Review
			pErr, rEr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			profile, pErr = s.Astrologers.GetByID(id)
		}()
		go func() {
			defer wg.Done()
			reviews, rEr = s.Astrologers.GetReviews(id)
		}()
		wg.Wait()

		if pErr != nil {
			s.fail("FetchAstrologerDetail", pErr)
			return nil
		}
		if rEr != nil {
			s.fail("FetchAstrologerDetail", rEr)
			return nil
		}
		if profile == nil {
			s.Notifier.Notice((&utils.NotFoundError{Entity: "Astrologer"}).Error())
			return nil
		}
		detail = &models.AstrologerDetail{Astrologer: *profile, Reviews: reviews}
		return nil
	})
	return detail
}

// UpdateProfile uploads the profile image first when it is still a local
// URI, writes the patch, then re-fetches the current user so the cache
// mirrors the store.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, fields map[string]any) bool {
	ok := false
	_ = s.State.Busy(func() error {
		if img, present := fields["profileImage"].(string); present && img != "" && !storage.IsRemoteURL(img) {
			url, err := s.Storage.UploadImage(ctx, img)
			if err != nil {
				s.fail("UpdateProfile", err)
				return nil
			}
			fields["profileImage"] = url
		}

		var err error
		if s.State.UserType() == models.UserTypeProfessional {
			err = s.Astrologers.UpdateFields(id, fields)
		} else {
			err = s.Users.UpdateFields(id, fields)
		}
		if err != nil {
			s.fail("UpdateProfile", &utils.PersistenceError{Op: "update profile", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	if ok {
		return s.FetchCurrentUser(ctx, id)
	}
	return false
}

// FetchUserPhoneNumber is a one-off read used to hydrate the contact
// field of the in-progress event draft.
func (s *DefaultUserService) FetchUserPhoneNumber(ctx context.Context, requesterID string) (string, bool) {
	phone := ""
	ok := false
	_ = s.State.Busy(func() error {
		u, err := s.Users.GetByID(requesterID)
		if err != nil {
			s.fail("FetchUserPhoneNumber", err)
			return nil
		}
		if u == nil {
			s.Notifier.Notice((&utils.NotFoundError{Entity: "User"}).Error())
			return nil
		}
		phone = u.PhoneNumber
		s.State.UpdateEventDraft(func(d *models.EventDraft) {
			d.PhoneNumber = phone
		})
		ok = true
		return nil
	})
	return phone, ok
}

// RegisterPushToken stores the device token on the account document and
// in the app slice.
func (s *DefaultUserService) RegisterPushToken(ctx context.Context, id, token string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		fields := map[string]any{"pushToken": token}
		var err error
		if s.State.UserType() == models.UserTypeProfessional {
			err = s.Astrologers.UpdateFields(id, fields)
		} else {
			err = s.Users.UpdateFields(id, fields)
		}
		if err != nil {
			s.fail("RegisterPushToken", &utils.PersistenceError{Op: "register push token", Err: err})
			return nil
		}
		s.State.SetDeviceToken(token)
		ok = true
		return nil
	})
	return ok
}
