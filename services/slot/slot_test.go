package slot

import (
	"context"
	"errors"
	"testing"

	"astromitra/models"
	"astromitra/state"
)

type stubSlotRepo struct {
	created []models.Slot
	updated []models.Slot
	deleted []string
	list    []models.Slot
	err     error
}

func (r *stubSlotRepo) Create(s *models.Slot) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *s)
	return nil
}

func (r *stubSlotRepo) Update(s *models.Slot) error {
	if r.err != nil {
		return r.err
	}
	r.updated = append(r.updated, *s)
	return nil
}

func (r *stubSlotRepo) Delete(id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubSlotRepo) ListByOwner(string) ([]models.Slot, error) {
	return r.list, r.err
}

type stubNotifier struct{ notices []string }

func (n *stubNotifier) Notice(message string) { n.notices = append(n.notices, message) }

func TestSaveSlotCreatesWithoutID(t *testing.T) {
	repo := &stubSlotRepo{}
	store := state.New(nil)
	svc := &DefaultSlotService{Slots: repo, State: store, Notifier: &stubNotifier{}}

	store.UpdateSlotDraft(func(d *models.SlotDraft) {
		d.AstrologerID = "a1"
		d.Type = models.SlotTypeCustom
		d.Date = "2026-04-01"
		d.StartTime = "09:00 AM"
		d.EndTime = "10:00 AM"
	})

	if !svc.SaveSlot(context.Background(), store.SlotDraft()) {
		t.Fatal("expected save to succeed")
	}
	if len(repo.created) != 1 || len(repo.updated) != 0 {
		t.Fatalf("expected create, got created=%d updated=%d", len(repo.created), len(repo.updated))
	}
	if d := store.SlotDraft(); d.Type != "" || d.Date != "" || d.AstrologerID != "" {
		t.Fatalf("expected draft reset after save, got %+v", d)
	}
}

func TestSaveSlotUpdatesWithID(t *testing.T) {
	repo := &stubSlotRepo{}
	store := state.New(nil)
	svc := &DefaultSlotService{Slots: repo, State: store, Notifier: &stubNotifier{}}

	draft := models.SlotDraft{
		ID:           "s1",
		AstrologerID: "a1",
		Type:         models.SlotTypeWeekly,
		RepeatDays:   []string{"Sun"},
		StartTime:    "09:00 AM",
		EndTime:      "10:00 AM",
	}
	if !svc.SaveSlot(context.Background(), draft) {
		t.Fatal("expected save to succeed")
	}
	if len(repo.updated) != 1 || len(repo.created) != 0 {
		t.Fatalf("expected update, got created=%d updated=%d", len(repo.created), len(repo.updated))
	}
}

func TestSaveSlotDropsFieldsOfOtherTypes(t *testing.T) {
	repo := &stubSlotRepo{}
	store := state.New(nil)
	svc := &DefaultSlotService{Slots: repo, State: store, Notifier: &stubNotifier{}}

	// A draft that switched from Repeat to Custom still carries the range.
	draft := models.SlotDraft{
		AstrologerID: "a1",
		Type:         models.SlotTypeCustom,
		Date:         "2026-04-01",
		StartDate:    "2026-04-01",
		EndDate:      "2026-04-10",
		StartTime:    "09:00 AM",
		EndTime:      "10:00 AM",
	}
	if !svc.SaveSlot(context.Background(), draft) {
		t.Fatal("expected save to succeed")
	}
	saved := repo.created[0]
	if saved.StartDate != "" || saved.EndDate != "" || saved.RepeatDays != nil {
		t.Fatalf("fields of other types must be dropped: %+v", saved)
	}
	if saved.Date != "2026-04-01" {
		t.Fatalf("type-matching field lost: %+v", saved)
	}
}

func TestSaveSlotKeepsDraftOnFailedPersist(t *testing.T) {
	repo := &stubSlotRepo{err: errors.New("write failed")}
	store := state.New(nil)
	n := &stubNotifier{}
	svc := &DefaultSlotService{Slots: repo, State: store, Notifier: n}

	store.UpdateSlotDraft(func(d *models.SlotDraft) {
		d.Type = models.SlotTypeCustom
		d.Date = "2026-04-01"
	})
	if svc.SaveSlot(context.Background(), store.SlotDraft()) {
		t.Fatal("expected save to fail")
	}
	if d := store.SlotDraft(); d.Date == "" {
		t.Fatal("failed save must keep the draft editable")
	}
	if len(n.notices) != 1 {
		t.Fatalf("expected 1 failure notice, got %d", len(n.notices))
	}
}

func TestDeleteSlotRefreshesOwnedList(t *testing.T) {
	repo := &stubSlotRepo{list: []models.Slot{{ID: "s2"}}}
	store := state.New(nil)
	store.SetProfessional(&models.Astrologer{ID: "a1"})
	store.SetSlots([]models.Slot{{ID: "s1"}, {ID: "s2"}})
	svc := &DefaultSlotService{Slots: repo, State: store, Notifier: &stubNotifier{}}

	if !svc.DeleteSlot(context.Background(), "s1") {
		t.Fatal("expected delete to succeed")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "s1" {
		t.Fatalf("unexpected deletions: %+v", repo.deleted)
	}
	if got := store.Slots(); len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("cached list not refreshed: %+v", got)
	}
}
