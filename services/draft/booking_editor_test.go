package draft

import (
	"context"
	"testing"

	"astromitra/models"
	"astromitra/state"
)

type stubBookingService struct {
	created []models.EventDraft
	updated []models.EventDraft
	ok      bool
}

func (s *stubBookingService) CreateBooking(_ context.Context, d models.EventDraft) bool {
	s.created = append(s.created, d)
	return s.ok
}

func (s *stubBookingService) UpdateBooking(_ context.Context, d models.EventDraft) bool {
	s.updated = append(s.updated, d)
	return s.ok
}

func (s *stubBookingService) FetchMyBookings(_ context.Context) bool { return s.ok }

func (s *stubBookingService) SoftDeleteBooking(_ context.Context, _ string) bool { return s.ok }

func (s *stubBookingService) UpdateStatus(_ context.Context, _, _ string) bool { return s.ok }

type recordingNotifier struct {
	notices []string
}

func (n *recordingNotifier) Notice(message string) {
	n.notices = append(n.notices, message)
}

func (n *recordingNotifier) last() string {
	if len(n.notices) == 0 {
		return ""
	}
	return n.notices[len(n.notices)-1]
}

func completeEventDraft() models.EventDraft {
	return models.EventDraft{
		UserID:       "u1",
		AstrologerID: "a1",
		Date:         "2026-04-01",
		StartTime:    "09:00 AM",
		EndTime:      "10:00 AM",
		Description:  "career reading",
		Photo:        "https://cdn.example.com/photo.jpg",
		FullName:     "Asha Rao",
		BirthDate:    "1990-01-15",
		BirthTime:    "04:20 AM",
		BirthPlace:   "Pune",
		Kundli:       "https://cdn.example.com/kundli.jpg",
	}
}

func TestValidateEventDraftOrder(t *testing.T) {
	clear := func(d *models.EventDraft, field string) {
		switch field {
		case "date":
			d.Date = ""
		case "starttime":
			d.StartTime = ""
		case "endtime":
			d.EndTime = ""
		case "description":
			d.Description = ""
		case "photo":
			d.Photo = ""
		case "fullName":
			d.FullName = ""
		case "birthDate":
			d.BirthDate = ""
		case "birthTime":
			d.BirthTime = ""
		case "birthPlace":
			d.BirthPlace = ""
		case "kundli":
			d.Kundli = ""
		}
	}

	cases := []struct {
		field string
		want  string
	}{
		{"date", MsgSelectDate},
		{"starttime", MsgSelectStartTime},
		{"endtime", MsgSelectEndTime},
		{"description", MsgEnterDescription},
		{"photo", MsgUploadPhoto},
		{"fullName", MsgEnterFullName},
		{"birthDate", MsgEnterBirthDate},
		{"birthTime", MsgEnterBirthTime},
		{"birthPlace", MsgEnterBirthPlace},
		{"kundli", MsgUploadKundli},
	}
	for _, c := range cases {
		d := completeEventDraft()
		clear(&d, c.field)
		err := ValidateEventDraft(d)
		if err == nil {
			t.Fatalf("missing %s: expected validation error", c.field)
		}
		if err.Error() != c.want {
			t.Fatalf("missing %s: got %q, want %q", c.field, err.Error(), c.want)
		}
	}
}

func TestValidateEventDraftFirstViolationWins(t *testing.T) {
	d := completeEventDraft()
	d.Date = ""
	d.Kundli = ""
	err := ValidateEventDraft(d)
	if err == nil || err.Error() != MsgSelectDate {
		t.Fatalf("got %v, want %q", err, MsgSelectDate)
	}
}

func TestValidateEventDraftTimeOrderingRunsLast(t *testing.T) {
	d := completeEventDraft()
	d.StartTime = "10:00 AM"
	d.EndTime = "09:00 AM"
	err := ValidateEventDraft(d)
	if err == nil || err.Error() != MsgStartBeforeEnd {
		t.Fatalf("got %v, want %q", err, MsgStartBeforeEnd)
	}

	// Equal start and end is rejected too.
	d.EndTime = "10:00 AM"
	err = ValidateEventDraft(d)
	if err == nil || err.Error() != MsgStartBeforeEnd {
		t.Fatalf("got %v, want %q", err, MsgStartBeforeEnd)
	}
}

func TestValidateEventDraftComplete(t *testing.T) {
	if err := ValidateEventDraft(completeEventDraft()); err != nil {
		t.Fatalf("complete draft rejected: %v", err)
	}
}

func TestBookNowResetsDraftOnSuccess(t *testing.T) {
	store := state.New(nil)
	svc := &stubBookingService{ok: true}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: &recordingNotifier{}}

	store.SetEventDraft(completeEventDraft())
	if !e.BookNow(context.Background()) {
		t.Fatal("expected submit to succeed")
	}
	if len(svc.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(svc.created))
	}
	if store.EventDraft() != (models.EventDraft{}) {
		t.Fatal("expected draft reset after successful submit")
	}
}

func TestBookNowKeepsDraftOnFailure(t *testing.T) {
	store := state.New(nil)
	svc := &stubBookingService{ok: false}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: &recordingNotifier{}}

	store.SetEventDraft(completeEventDraft())
	if e.BookNow(context.Background()) {
		t.Fatal("expected submit to fail")
	}
	if store.EventDraft() == (models.EventDraft{}) {
		t.Fatal("failed submit must keep the draft editable")
	}
}

func TestBookNowInvalidDraftNotifiesAndSkipsService(t *testing.T) {
	store := state.New(nil)
	svc := &stubBookingService{ok: true}
	n := &recordingNotifier{}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: n}

	d := completeEventDraft()
	d.Photo = ""
	store.SetEventDraft(d)
	if e.BookNow(context.Background()) {
		t.Fatal("expected invalid draft to fail")
	}
	if len(svc.created) != 0 {
		t.Fatal("invalid draft must not reach the service")
	}
	if n.last() != MsgUploadPhoto {
		t.Fatalf("notice = %q, want %q", n.last(), MsgUploadPhoto)
	}
}

func TestSaveRejectsPendingApprovalForProfessional(t *testing.T) {
	store := state.New(nil)
	store.SetUserType(models.UserTypeProfessional)
	svc := &stubBookingService{ok: true}
	n := &recordingNotifier{}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: n}

	d := completeEventDraft()
	d.ID = "b1"
	d.Status = models.BookingStatusWaiting
	store.SetEventDraft(d)

	if e.Save(context.Background()) {
		t.Fatal("expected save to be rejected while status is waiting")
	}
	if len(svc.updated) != 0 {
		t.Fatal("rejected save must not reach the service")
	}
	if n.last() != MsgPendingApproval {
		t.Fatalf("notice = %q, want %q", n.last(), MsgPendingApproval)
	}
}

func TestSaveAllowsDecidedStatusForProfessional(t *testing.T) {
	store := state.New(nil)
	store.SetUserType(models.UserTypeProfessional)
	svc := &stubBookingService{ok: true}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: &recordingNotifier{}}

	d := completeEventDraft()
	d.ID = "b1"
	d.Status = models.BookingStatusApproved
	store.SetEventDraft(d)

	if !e.Save(context.Background()) {
		t.Fatal("expected save to succeed after a decision")
	}
	if len(svc.updated) != 1 {
		t.Fatalf("expected 1 update, got %d", len(svc.updated))
	}
}

func TestSaveWaitingStatusAllowedForRequester(t *testing.T) {
	store := state.New(nil)
	store.SetUserType(models.UserTypeRequester)
	svc := &stubBookingService{ok: true}
	e := &BookingEditor{State: store, Bookings: svc, Notifier: &recordingNotifier{}}

	d := completeEventDraft()
	d.ID = "b1"
	d.Status = models.BookingStatusWaiting
	store.SetEventDraft(d)

	if !e.Save(context.Background()) {
		t.Fatal("requester edits of a waiting booking must be allowed")
	}
}
