package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/calboard/internal/model"
)

// Mode selects the interaction flow.
type Mode string

const (
	// ModeDialog creates and edits events through a form dialog.
	ModeDialog Mode = "dialog"
	// ModePrompt creates through a title prompt and deletes after a
	// confirmation.
	ModePrompt Mode = "prompt"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDialog:
		return ModeDialog, nil
	case ModePrompt:
		return ModePrompt, nil
	}
	return "", fmt.Errorf("unknown interaction mode %q", s)
}

type State string

const (
	StateIdle             State = "idle"
	StateSelecting        State = "selecting"
	StateEditing          State = "editing"
	StateConfirmingDelete State = "confirming_delete"
)

type Outcome string

const (
	OutcomeEditing   Outcome = "editing"
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeAborted   Outcome = "aborted"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeCancelled Outcome = "cancelled"
)

// Result reports how an interaction concluded. Event is set for created,
// updated and deleted outcomes.
type Result struct {
	Outcome Outcome
	Event   *model.Event
}

const (
	titlePrompt       = "Enter a title for your event"
	emptyTitleWarning = "Event title cannot be empty."
)

// Options configures a Component. A nil KV keeps events in memory only.
type Options struct {
	Mode   Mode
	KV     KV
	Key    string
	Grid   Grid
	Logger *slog.Logger
}

// Component owns the event list and drives the select/edit/delete flows.
// All flows are serialized; a modal interaction holds the component until the
// user resolves it.
type Component struct {
	mu     sync.Mutex
	mode   Mode
	store  *Store
	mirror *Mirror
	grid   Grid
	logger *slog.Logger

	state State
	form  *Form
}

// New builds a Component and, when a KV is configured, restores the list
// stored under the mirror key. A malformed snapshot is logged and replaced by
// an empty list.
func New(opts Options) *Component {
	c := &Component{
		mode:   opts.Mode,
		store:  NewStore(nil),
		grid:   opts.Grid,
		logger: opts.Logger,
		state:  StateIdle,
	}
	if c.mode == "" {
		c.mode = ModeDialog
	}
	if c.grid == nil {
		c.grid = nopGrid{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if opts.KV != nil {
		c.mirror = NewMirror(opts.KV, opts.Key)
		events, err := c.mirror.Load()
		if err != nil {
			c.logger.Warn("restore events failed, starting empty", "key", c.mirror.Key(), "error", err)
			events = nil
		}
		c.store.Replace(events)
		c.logger.Info("events restored", "key", c.mirror.Key(), "count", c.store.Len())
	}

	return c
}

func (c *Component) Mode() Mode {
	return c.mode
}

func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Events returns a copy of the list for rendering.
func (c *Component) Events() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.List()
}

// Form returns the open dialog's state, if any.
func (c *Component) Form() (Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return Form{}, false
	}
	return *c.form, true
}

// Select handles a range drawn on the grid. In dialog mode it opens the
// create form pre-filled with the range. In prompt mode it asks ui for a
// title and commits immediately; a blank answer aborts with a warning.
func (c *Component) Select(ctx context.Context, sel Selection, ui Interaction) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkRange(sel.Start, sel.End); err != nil {
		return Result{}, fmt.Errorf("select: %w", err)
	}

	if c.mode == ModeDialog {
		if c.state != StateIdle && c.state != StateEditing {
			return Result{}, fmt.Errorf("select in %s: %w", c.state, ErrInvalidState)
		}
		c.form = &Form{Start: sel.Start, End: sel.End}
		c.state = StateEditing
		return Result{Outcome: OutcomeEditing}, nil
	}

	if c.state != StateIdle {
		return Result{}, fmt.Errorf("select in %s: %w", c.state, ErrInvalidState)
	}
	if ui == nil {
		return Result{}, ErrNoInteraction
	}

	c.state = StateSelecting
	defer c.conclude()

	answer, ok, err := ui.Prompt(ctx, titlePrompt)
	if err != nil {
		return Result{}, fmt.Errorf("prompt title: %w", err)
	}
	title := strings.TrimSpace(answer)
	if !ok || title == "" {
		if err := ui.Alert(ctx, emptyTitleWarning); err != nil {
			return Result{}, fmt.Errorf("alert: %w", err)
		}
		return Result{Outcome: OutcomeAborted}, nil
	}

	ev := model.Event{
		ID:     NewRandomID(),
		Title:  title,
		Start:  sel.Start,
		End:    sel.End,
		AllDay: sel.AllDay,
	}
	if err := c.store.Add(ev); err != nil {
		return Result{}, err
	}
	c.commit()
	c.grid.AddEvent(ev)
	c.logger.Info("event created", "id", ev.ID, "title", ev.Title)

	return Result{Outcome: OutcomeCreated, Event: &ev}, nil
}

// EventClick handles a click on a rendered event. In dialog mode it opens the
// edit form for that event. In prompt mode it asks ui to confirm deletion.
func (c *Component) EventClick(ctx context.Context, id string, ui Interaction) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev, ok := c.store.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("click %q: %w", id, ErrEventNotFound)
	}

	if c.mode == ModeDialog {
		if c.state != StateIdle && c.state != StateEditing {
			return Result{}, fmt.Errorf("click in %s: %w", c.state, ErrInvalidState)
		}
		c.form = &Form{Title: ev.Title, Start: ev.Start, End: ev.End, EditingID: ev.ID}
		c.state = StateEditing
		return Result{Outcome: OutcomeEditing}, nil
	}

	if c.state != StateIdle {
		return Result{}, fmt.Errorf("click in %s: %w", c.state, ErrInvalidState)
	}
	if ui == nil {
		return Result{}, ErrNoInteraction
	}

	c.state = StateConfirmingDelete
	defer func() { c.state = StateIdle }()

	confirmed, err := ui.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete the event '%s'?", ev.Title))
	if err != nil {
		return Result{}, fmt.Errorf("confirm delete: %w", err)
	}
	if !confirmed {
		return Result{Outcome: OutcomeCancelled}, nil
	}

	if err := c.store.Remove(id); err != nil {
		return Result{}, err
	}
	c.commit()
	c.grid.RemoveEvent(id)
	c.logger.Info("event deleted", "id", id, "title", ev.Title)

	return Result{Outcome: OutcomeDeleted, Event: &ev}, nil
}

// Submit commits the open form. Editing replaces the target record and keeps
// its id; otherwise a new record is appended. The form closes on success and
// stays open on validation errors.
func (c *Component) Submit(in FormInput) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeDialog || c.state != StateEditing || c.form == nil {
		return Result{}, fmt.Errorf("submit in %s: %w", c.state, ErrInvalidState)
	}
	if err := validate(in); err != nil {
		return Result{}, err
	}

	title := strings.TrimSpace(in.Title)
	ev := model.Event{
		Title: title,
		Start: in.Start,
		End:   in.End,
	}

	var outcome Outcome
	if c.form.Editing() {
		ev.ID = c.form.EditingID
		if err := c.store.Update(c.form.EditingID, ev); err != nil {
			return Result{}, err
		}
		outcome = OutcomeUpdated
	} else {
		ev.ID = DerivedID(in.Start, title)
		if c.store.Has(ev.ID) {
			ev.ID = NewRandomID()
		}
		if err := c.store.Add(ev); err != nil {
			return Result{}, err
		}
		outcome = OutcomeCreated
	}

	c.commit()
	if outcome == OutcomeUpdated {
		c.grid.UpdateEvent(ev)
	} else {
		c.grid.AddEvent(ev)
	}
	c.logger.Info("event "+string(outcome), "id", ev.ID, "title", ev.Title)
	c.conclude()

	return Result{Outcome: outcome, Event: &ev}, nil
}

// Cancel dismisses the form without mutating anything.
func (c *Component) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conclude()
}

func validate(in FormInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	return checkRange(in.Start, in.End)
}

// checkRange requires both bounds and end not before start.
func checkRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrTimeRequired
	}
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}

// conclude ends a create/edit flow and clears the grid's selection highlight.
func (c *Component) conclude() {
	c.form = nil
	c.state = StateIdle
	c.grid.Unselect()
}

// commit mirrors the list to storage. A failed write is logged; the in-memory
// list stays authoritative.
func (c *Component) commit() {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.Save(c.store.List()); err != nil {
		c.logger.Error("persist events", "key", c.mirror.Key(), "error", err)
	}
}
