package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/calboard/internal/model"
)

func testEvent(id, title string, hour int) model.Event {
	start := time.Date(2024, 1, 2, hour, 0, 0, 0, time.UTC)
	return model.Event{ID: id, Title: title, Start: start, End: start.Add(30 * time.Minute)}
}

func TestStoreAdd(t *testing.T) {
	s := NewStore(nil)

	if err := s.Add(testEvent("a", "Standup", 9)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(testEvent("b", "Lunch", 12)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	list := s.List()
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("order = [%s %s], want [a b]", list[0].ID, list[1].ID)
	}
}

func TestStoreAddDuplicateID(t *testing.T) {
	s := NewStore(nil)
	s.Add(testEvent("a", "Standup", 9))

	err := s.Add(testEvent("a", "Other", 10))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestStoreUpdatePreservesID(t *testing.T) {
	s := NewStore([]model.Event{testEvent("a", "Standup", 9), testEvent("b", "Lunch", 12)})

	changed := testEvent("ignored", "Retro", 15)
	if err := s.Update("a", changed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, ok := s.Get("a")
	if !ok {
		t.Fatal("event a missing after update")
	}
	if got.Title != "Retro" {
		t.Errorf("title = %q, want %q", got.Title, "Retro")
	}
	if !got.Start.Equal(changed.Start) {
		t.Errorf("start = %v, want %v", got.Start, changed.Start)
	}
	if s.Has("ignored") {
		t.Error("update should not introduce the submitted id")
	}
	if other, _ := s.Get("b"); other.Title != "Lunch" {
		t.Errorf("untouched event title = %q, want Lunch", other.Title)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestStoreUpdateNotFound(t *testing.T) {
	s := NewStore(nil)
	if err := s.Update("missing", testEvent("missing", "x", 9)); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestStoreUpdateAt(t *testing.T) {
	s := NewStore([]model.Event{testEvent("a", "Standup", 9)})

	if err := s.UpdateAt(0, testEvent("z", "Renamed", 9)); err != nil {
		t.Fatalf("update at: %v", err)
	}
	got, _ := s.Get("a")
	if got.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Title)
	}

	if err := s.UpdateAt(3, testEvent("z", "x", 9)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore([]model.Event{testEvent("a", "Standup", 9), testEvent("b", "Lunch", 12), testEvent("c", "Gym", 18)})

	if err := s.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Has("b") {
		t.Error("b still present")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
	if s.Index("c") != 1 {
		t.Errorf("index of c = %d, want 1", s.Index("c"))
	}

	if err := s.Remove("b"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second remove err = %v, want ErrEventNotFound", err)
	}
}

func TestStoreListIsCopy(t *testing.T) {
	s := NewStore([]model.Event{testEvent("a", "Standup", 9)})

	list := s.List()
	list[0].Title = "mutated"

	got, _ := s.Get("a")
	if got.Title != "Standup" {
		t.Errorf("store mutated through List: title = %q", got.Title)
	}
}

func TestStoreListEmptyNotNil(t *testing.T) {
	if NewStore(nil).List() == nil {
		t.Error("List on empty store returned nil")
	}
}

func TestStoreReplaceDropsDuplicates(t *testing.T) {
	s := NewStore(nil)
	s.Replace([]model.Event{testEvent("a", "first", 9), testEvent("a", "second", 10), testEvent("b", "Lunch", 12)})

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if got, _ := s.Get("a"); got.Title != "first" {
		t.Errorf("kept title = %q, want first", got.Title)
	}
}
