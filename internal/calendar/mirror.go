package calendar

import (
	"encoding/json"
	"fmt"

	"github.com/dukerupert/calboard/internal/model"
)

// StorageKey is the key the event list is mirrored under.
const StorageKey = "events"

// KV is the durable key-value surface: read once at startup, written after
// every committed mutation.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Mirror serializes the full event list to a KV under a fixed key.
type Mirror struct {
	kv  KV
	key string
}

func NewMirror(kv KV, key string) *Mirror {
	if key == "" {
		key = StorageKey
	}
	return &Mirror{kv: kv, key: key}
}

func (m *Mirror) Key() string {
	return m.key
}

// Load returns the stored list. A missing key yields an empty list.
func (m *Mirror) Load() ([]model.Event, error) {
	raw, found, err := m.kv.Get(m.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", m.key, err)
	}
	if !found || raw == "" {
		return []model.Event{}, nil
	}

	var events []model.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Save writes the whole list, replacing whatever was stored.
func (m *Mirror) Save(events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	if err := m.kv.Set(m.key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", m.key, err)
	}
	return nil
}
