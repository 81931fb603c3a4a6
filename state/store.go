// Package state holds the process-wide client state cache. The remote
// store owns the durable copy of every entity; this store is a
// read-through mirror partitioned into independently-mutable slices.
package state

import (
	"sync"

	"astromitra/models"
)

// UserSlice is the only slice that survives a process restart.
type UserSlice struct {
	Profile         *models.User         `json:"profile,omitempty"`
	Professional    *models.Astrologer   `json:"professional,omitempty"`
	UserType        models.UserType      `json:"userType,omitempty"`
	Astrologers     []models.Astrologer  `json:"astrologers,omitempty"`
	Bookings        []models.Booking     `json:"bookings,omitempty"`
	SelectedBooking *models.Booking      `json:"selectedBooking,omitempty"`
	SlotDraft       models.SlotDraft     `json:"slotDraft,omitempty"`
	Slots           []models.Slot        `json:"slots,omitempty"`
	Transactions    []models.Transaction `json:"transactions,omitempty"`
	Messages        []models.ChatMessage `json:"messages,omitempty"`
}

// AppSlice holds reference lists and the device push token. Rebuilt from
// scratch on every cold start.
type AppSlice struct {
	Languages    []models.Language
	Specialities []models.Speciality
	DeviceToken  string
}

// Store is the single-writer state container. All mutations go through
// its methods; readers use the narrow selectors.
type Store struct {
	mu        sync.RWMutex
	user      UserSlice
	event     models.EventDraft
	loading   bool
	app       AppSlice
	persister Persister
}

// New creates an empty store. A nil persister disables durability.
func New(p Persister) *Store {
	return &Store{persister: p}
}

// --- loading slice ---

// SetLoading flips the global busy flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// IsLoading reports the global busy flag.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Busy runs fn with the busy flag held, clearing it on every exit path
// including panics and early returns inside fn.
func (s *Store) Busy(fn func() error) error {
	s.SetLoading(true)
	defer s.SetLoading(false)
	return fn()
}

// --- user slice ---

func (s *Store) SetUserType(t models.UserType) {
	s.mu.Lock()
	s.user.UserType = t
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) UserType() models.UserType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.UserType
}

func (s *Store) SetProfile(u *models.User) {
	s.mu.Lock()
	s.user.Profile = u
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Profile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Profile
}

func (s *Store) SetProfessional(a *models.Astrologer) {
	s.mu.Lock()
	s.user.Professional = a
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Professional() *models.Astrologer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Professional
}

func (s *Store) SetAstrologers(list []models.Astrologer) {
	s.mu.Lock()
	s.user.Astrologers = list
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Astrologers() []models.Astrologer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Astrologers
}

// SetBookings replaces the my-bookings list wholesale. Racing fetches are
// last-write-wins; no merge is attempted.
func (s *Store) SetBookings(list []models.Booking) {
	s.mu.Lock()
	s.user.Bookings = list
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Bookings
}

// PatchBooking shallow-merges a status change into the cached copy of one
// booking, for callers that patch instead of refetching.
func (s *Store) PatchBooking(id string, fields func(*models.Booking)) {
	s.mu.Lock()
	for i := range s.user.Bookings {
		if s.user.Bookings[i].ID == id {
			fields(&s.user.Bookings[i])
			break
		}
	}
	if s.user.SelectedBooking != nil && s.user.SelectedBooking.ID == id {
		fields(s.user.SelectedBooking)
	}
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) SetSelectedBooking(b *models.Booking) {
	s.mu.Lock()
	s.user.SelectedBooking = b
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) SelectedBooking() *models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.SelectedBooking
}

func (s *Store) SetSlots(list []models.Slot) {
	s.mu.Lock()
	s.user.Slots = list
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Slots() []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Slots
}

// UpdateSlotDraft applies a field-level mutation to the in-progress slot
// draft.
func (s *Store) UpdateSlotDraft(fn func(*models.SlotDraft)) {
	s.mu.Lock()
	fn(&s.user.SlotDraft)
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) SlotDraft() models.SlotDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.SlotDraft
}

func (s *Store) ResetSlotDraft() {
	s.mu.Lock()
	s.user.SlotDraft = models.SlotDraft{}
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) SetTransactions(list []models.Transaction) {
	s.mu.Lock()
	s.user.Transactions = list
	s.mu.Unlock()
	s.persistUserSlice()
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Transactions
}

func (s *Store) SetMessages(list []models.ChatMessage) {
	s.mu.Lock()
	s.user.Messages = list
	s.mu.Unlock()
}

func (s *Store) AppendMessage(m models.ChatMessage) {
	s.mu.Lock()
	s.user.Messages = append(s.user.Messages, m)
	s.mu.Unlock()
}

func (s *Store) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Messages
}

// ResetMessages clears the chat slice when the owning screen loses focus.
func (s *Store) ResetMessages() {
	s.mu.Lock()
	s.user.Messages = nil
	s.mu.Unlock()
}

// --- event slice ---

// UpdateEventDraft applies a field-level mutation to the in-progress
// booking draft.
func (s *Store) UpdateEventDraft(fn func(*models.EventDraft)) {
	s.mu.Lock()
	fn(&s.event)
	s.mu.Unlock()
}

func (s *Store) EventDraft() models.EventDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.event
}

func (s *Store) SetEventDraft(d models.EventDraft) {
	s.mu.Lock()
	s.event = d
	s.mu.Unlock()
}

func (s *Store) ResetEventDraft() {
	s.mu.Lock()
	s.event = models.EventDraft{}
	s.mu.Unlock()
}

// --- app slice ---

func (s *Store) SetReferenceLists(langs []models.Language, specs []models.Speciality) {
	s.mu.Lock()
	s.app.Languages = langs
	s.app.Specialities = specs
	s.mu.Unlock()
}

func (s *Store) Languages() []models.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.Languages
}

func (s *Store) Specialities() []models.Speciality {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.Specialities
}

func (s *Store) SetDeviceToken(token string) {
	s.mu.Lock()
	s.app.DeviceToken = token
	s.mu.Unlock()
}

func (s *Store) DeviceToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.DeviceToken
}

// Reset returns every slice to its initial value, including the persisted
// user slice (sign-out path).
func (s *Store) Reset() {
	s.mu.Lock()
	s.user = UserSlice{}
	s.event = models.EventDraft{}
	s.loading = false
	s.app = AppSlice{}
	s.mu.Unlock()
	s.clearPersisted()
}
