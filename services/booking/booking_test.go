package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"astromitra/models"
	"astromitra/state"
)

type stubBookingRepo struct {
	created []models.Booking
	list    []models.Booking
	patches map[string]map[string]any
	deleted []string
	err     error
}

func (r *stubBookingRepo) Create(b *models.Booking) error {
	if r.err != nil {
		return r.err
	}
	b.Status = models.BookingStatusWaiting
	r.created = append(r.created, *b)
	return nil
}

func (r *stubBookingRepo) ListByUser(string) ([]models.Booking, error) {
	return r.list, r.err
}

func (r *stubBookingRepo) ListByAstrologer(string) ([]models.Booking, error) {
	return r.list, r.err
}

func (r *stubBookingRepo) UpdateFields(id string, fields map[string]any) error {
	if r.err != nil {
		return r.err
	}
	if r.patches == nil {
		r.patches = make(map[string]map[string]any)
	}
	r.patches[id] = fields
	return nil
}

func (r *stubBookingRepo) UpdateStatus(id, status string) error {
	return r.UpdateFields(id, map[string]any{"status": status})
}

func (r *stubBookingRepo) SoftDelete(id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) { return r.users[id], nil }

func (r *stubUserRepo) GetByPhone(string) (*models.User, error) { return nil, nil }

func (r *stubUserRepo) Create(*models.User) error { return nil }

func (r *stubUserRepo) UpdateFields(string, map[string]any) error { return nil }

func (r *stubUserRepo) AdjustWallet(string, float64) error { return nil }

type stubAstroRepo struct {
	astrologers map[string]*models.Astrologer
}

func (r *stubAstroRepo) GetByID(id string) (*models.Astrologer, error) {
	return r.astrologers[id], nil
}
func (r *stubAstroRepo) GetByPhone(string) (*models.Astrologer, error) { return nil, nil }

func (r *stubAstroRepo) GetAll() ([]models.Astrologer, error) { return nil, nil }

func (r *stubAstroRepo) Create(*models.Astrologer) error { return nil }

func (r *stubAstroRepo) UpdateFields(string, map[string]any) error { return nil }

func (r *stubAstroRepo) GetReviews(string) ([]models.Review, error) { return nil, nil }

type countingStorage struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (s *countingStorage) UploadImage(_ context.Context, localPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, localPath)
	return "https://cdn.example.com/" + localPath, nil
}

func (s *countingStorage) Delete(context.Context, string) error { return nil }

type silentNotifier struct{ notices []string }

func (n *silentNotifier) Notice(message string) { n.notices = append(n.notices, message) }

type recordingPush struct {
	tokens []string
	kinds  []string
}

func (p *recordingPush) NotifyBooking(token, _, _, _, kind string) {
	p.tokens = append(p.tokens, token)
	p.kinds = append(p.kinds, kind)
}

func newTestService(repo *stubBookingRepo, store *state.Store) (*DefaultBookingService, *countingStorage, *recordingPush) {
	st := &countingStorage{}
	push := &recordingPush{}
	svc := &DefaultBookingService{
		Bookings:    repo,
		Users:       &stubUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "user-token"}}},
		Astrologers: &stubAstroRepo{astrologers: map[string]*models.Astrologer{"a1": {ID: "a1", PushToken: "astro-token"}}},
		Storage:     st,
		State:       store,
		Notifier:    &silentNotifier{},
		Push:        push,
	}
	return svc, st, push
}

func draftWithImages(photo, kundli string) models.EventDraft {
	return models.EventDraft{
		ID:           "b1",
		UserID:       "u1",
		AstrologerID: "a1",
		Date:         "2026-04-01",
		StartTime:    "09:00 AM",
		EndTime:      "10:00 AM",
		Description:  "career reading",
		FullName:     "Asha Rao",
		BirthDate:    "1990-01-15",
		BirthTime:    "04:20 AM",
		BirthPlace:   "Pune",
		Photo:        photo,
		Kundli:       kundli,
	}
}

func TestCreateBookingUploadsLocalImagesAndNotifies(t *testing.T) {
	repo := &stubBookingRepo{}
	store := state.New(nil)
	svc, st, push := newTestService(repo, store)

	d := draftWithImages("file:///tmp/photo.jpg", "file:///tmp/kundli.jpg")
	if !svc.CreateBooking(context.Background(), d) {
		t.Fatal("expected create to succeed")
	}
	if len(st.uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(st.uploads))
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(repo.created))
	}

	b := repo.created[0]
	if b.Status != models.BookingStatusWaiting {
		t.Fatalf("new booking status = %q, want waiting", b.Status)
	}
	if b.Photo == d.Photo || b.Kundli == d.Kundli {
		t.Fatal("expected local URIs replaced by durable URLs")
	}
	if len(push.tokens) != 1 || push.tokens[0] != "astro-token" || push.kinds[0] != "booking_created" {
		t.Fatalf("unexpected push: %+v %+v", push.tokens, push.kinds)
	}
}

func TestCreateBookingSkipsDurableURLs(t *testing.T) {
	repo := &stubBookingRepo{}
	store := state.New(nil)
	svc, st, _ := newTestService(repo, store)

	d := draftWithImages("https://cdn.example.com/photo.jpg", "https://cdn.example.com/kundli.jpg")
	if !svc.CreateBooking(context.Background(), d) {
		t.Fatal("expected create to succeed")
	}
	if len(st.uploads) != 0 {
		t.Fatalf("durable URLs must not be re-uploaded, got %d uploads", len(st.uploads))
	}
	if repo.created[0].Photo != d.Photo {
		t.Fatal("durable URL must be written through unchanged")
	}
}

func TestCreateBookingFailsWhenUploadFails(t *testing.T) {
	repo := &stubBookingRepo{}
	store := state.New(nil)
	svc, st, _ := newTestService(repo, store)
	st.err = errors.New("upload failed")

	d := draftWithImages("file:///tmp/photo.jpg", "https://cdn.example.com/kundli.jpg")
	if svc.CreateBooking(context.Background(), d) {
		t.Fatal("expected create to fail when an upload fails")
	}
	if len(repo.created) != 0 {
		t.Fatal("dependent write must not run after a failed upload")
	}
}

func TestUpdateBookingRefreshesList(t *testing.T) {
	repo := &stubBookingRepo{list: []models.Booking{{ID: "b1", Status: models.BookingStatusWaiting}}}
	store := state.New(nil)
	store.SetUserType(models.UserTypeRequester)
	store.SetProfile(&models.User{ID: "u1"})
	svc, st, _ := newTestService(repo, store)

	d := draftWithImages("https://cdn.example.com/photo.jpg", "https://cdn.example.com/kundli.jpg")
	if !svc.UpdateBooking(context.Background(), d) {
		t.Fatal("expected update to succeed")
	}
	if len(st.uploads) != 0 {
		t.Fatal("repeated save with durable URLs must not upload again")
	}
	if repo.patches["b1"] == nil {
		t.Fatal("expected a field patch for b1")
	}
	if got := store.Bookings(); len(got) != 1 || got[0].ID != "b1" {
		t.Fatalf("expected refreshed list in cache, got %+v", got)
	}
}

func TestFetchMyBookingsRequiresProfileEntity(t *testing.T) {
	repo := &stubBookingRepo{}
	store := state.New(nil)
	store.SetUserType(models.UserTypeRequester)
	svc, _, _ := newTestService(repo, store)

	if svc.FetchMyBookings(context.Background()) {
		t.Fatal("expected fetch to fail without a cached profile")
	}
}

func TestSoftDeleteKeepsRecord(t *testing.T) {
	repo := &stubBookingRepo{list: []models.Booking{{ID: "b1", Status: models.BookingStatusDeleted}}}
	store := state.New(nil)
	store.SetUserType(models.UserTypeRequester)
	store.SetProfile(&models.User{ID: "u1"})
	svc, _, _ := newTestService(repo, store)

	if !svc.SoftDeleteBooking(context.Background(), "b1") {
		t.Fatal("expected soft delete to succeed")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "b1" {
		t.Fatalf("expected soft delete of b1, got %+v", repo.deleted)
	}
}

func TestUpdateStatusPatchesCacheAndNotifiesRequester(t *testing.T) {
	repo := &stubBookingRepo{list: []models.Booking{{ID: "b1", UserID: "u1", Status: models.BookingStatusApproved}}}
	store := state.New(nil)
	store.SetUserType(models.UserTypeProfessional)
	store.SetProfessional(&models.Astrologer{ID: "a1"})
	store.SetBookings([]models.Booking{{ID: "b1", UserID: "u1", Status: models.BookingStatusWaiting}})
	svc, _, push := newTestService(repo, store)

	if !svc.UpdateStatus(context.Background(), "b1", models.BookingStatusApproved) {
		t.Fatal("expected status update to succeed")
	}
	if got := repo.patches["b1"]["status"]; got != models.BookingStatusApproved {
		t.Fatalf("stored status = %v, want approved", got)
	}
	if len(push.tokens) != 1 || push.tokens[0] != "user-token" || push.kinds[0] != "status_changed" {
		t.Fatalf("unexpected push: %+v %+v", push.tokens, push.kinds)
	}
}
