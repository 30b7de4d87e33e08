package calendar

import (
	"context"
	"time"

	"github.com/dukerupert/calboard/internal/model"
)

// Interaction is a blocking modal dialog surface. Each call returns only
// once the user has resolved it.
type Interaction interface {
	// Prompt asks for a line of text. ok is false when the user dismissed it.
	Prompt(ctx context.Context, message string) (answer string, ok bool, err error)
	Confirm(ctx context.Context, message string) (bool, error)
	Alert(ctx context.Context, message string) error
}

// Grid receives the notifications the rendered calendar needs beyond the
// event feed. The widget keeps its own copy of events, so removals are sent
// explicitly rather than left to the next render.
type Grid interface {
	Unselect()
	AddEvent(ev model.Event)
	UpdateEvent(ev model.Event)
	RemoveEvent(id string)
}

// Selection is a range drawn on the grid.
type Selection struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Form is the state carried by the create/edit dialog between open and close.
// EditingID is empty in create mode.
type Form struct {
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	EditingID string    `json:"editing_id,omitempty"`
}

func (f Form) Editing() bool {
	return f.EditingID != ""
}

func (f Form) SubmitLabel() string {
	if f.Editing() {
		return "Update Event"
	}
	return "Add Event"
}

// FormInput is what the user submits from the dialog.
type FormInput struct {
	Title string
	Start time.Time
	End   time.Time
}

type nopGrid struct{}

func (nopGrid) Unselect()               {}
func (nopGrid) AddEvent(model.Event)    {}
func (nopGrid) UpdateEvent(model.Event) {}
func (nopGrid) RemoveEvent(string)      {}
