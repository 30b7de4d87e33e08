package calendar

import (
	"fmt"
	"slices"

	"github.com/dukerupert/calboard/internal/model"
)

// Store is the ordered in-memory event list. It performs no validation of
// titles or time ranges; callers do that before mutating.
type Store struct {
	events []model.Event
}

func NewStore(events []model.Event) *Store {
	s := &Store{}
	s.Replace(events)
	return s
}

// Add appends ev. The id must not already be present.
func (s *Store) Add(ev model.Event) error {
	if s.index(ev.ID) >= 0 {
		return fmt.Errorf("add %q: %w", ev.ID, ErrDuplicateID)
	}
	s.events = append(s.events, ev)
	return nil
}

// Update replaces the record with the given id in place. The stored id is
// kept regardless of ev.ID.
func (s *Store) Update(id string, ev model.Event) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("update %q: %w", id, ErrEventNotFound)
	}
	ev.ID = id
	s.events[i] = ev
	return nil
}

// UpdateAt replaces the record at position i, preserving its id.
func (s *Store) UpdateAt(i int, ev model.Event) error {
	if i < 0 || i >= len(s.events) {
		return fmt.Errorf("update index %d: %w", i, ErrIndexOutOfRange)
	}
	ev.ID = s.events[i].ID
	s.events[i] = ev
	return nil
}

func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrEventNotFound)
	}
	s.events = slices.Delete(s.events, i, i+1)
	return nil
}

func (s *Store) Get(id string) (model.Event, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Event{}, false
	}
	return s.events[i], true
}

func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Index returns the position of id, or -1.
func (s *Store) Index(id string) int {
	return s.index(id)
}

// List returns a copy of the events in order. Never nil.
func (s *Store) List() []model.Event {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) Len() int {
	return len(s.events)
}

// Replace swaps the whole list. Later duplicates of an id are dropped so the
// uniqueness invariant holds for restored data.
func (s *Store) Replace(events []model.Event) {
	s.events = make([]model.Event, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		seen[ev.ID] = struct{}{}
		s.events = append(s.events, ev)
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.events, func(ev model.Event) bool { return ev.ID == id })
}
