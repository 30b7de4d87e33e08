package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/calboard/internal/calendar"
	"github.com/dukerupert/calboard/internal/model"
)

// datetimeLocal is the layout of an HTML datetime-local input.
const datetimeLocal = "2006-01-02T15:04"

type CalendarEventHandler struct {
	component *calendar.Component
	logger    *slog.Logger
}

func NewCalendarEventHandler(c *calendar.Component, logger *slog.Logger) *CalendarEventHandler {
	return &CalendarEventHandler{component: c, logger: logger}
}

type selectionRequest struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	AllDay bool    `json:"allDay"`
	Title  *string `json:"title"`
}

type clickRequest struct {
	Confirmed *bool `json:"confirmed"`
}

type formRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type formView struct {
	calendar.Form
	Label      string `json:"submit_label"`
	StartInput string `json:"start_input"`
	EndInput   string `json:"end_input"`
}

type interactionResponse struct {
	State    calendar.State   `json:"state"`
	Outcome  calendar.Outcome `json:"outcome,omitempty"`
	Event    *model.Event     `json:"event,omitempty"`
	Form     *formView        `json:"form,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Events   []model.Event    `json:"events"`
}

// answeredInteraction resolves the component's modal calls with answers the
// browser already collected through its own blocking prompt and confirm
// dialogs. Alerts are queued for the page to show.
type answeredInteraction struct {
	title     *string
	confirmed *bool
	alerts    []string
}

func (a *answeredInteraction) Prompt(ctx context.Context, message string) (string, bool, error) {
	if a.title == nil {
		return "", false, nil
	}
	return *a.title, true, nil
}

func (a *answeredInteraction) Confirm(ctx context.Context, message string) (bool, error) {
	return a.confirmed != nil && *a.confirmed, nil
}

func (a *answeredInteraction) Alert(ctx context.Context, message string) error {
	a.alerts = append(a.alerts, message)
	return nil
}

// List serves the event feed the grid renders.
func (h *CalendarEventHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.component.Events())
}

func (h *CalendarEventHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	start, err := parseFlexibleTime(req.Start)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start must be RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD"})
		return
	}
	end, err := parseFlexibleTime(req.End)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end must be RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD"})
		return
	}

	ui := &answeredInteraction{title: req.Title}
	res, err := h.component.Select(r.Context(), calendar.Selection{Start: start, End: end, AllDay: req.AllDay}, ui)
	if err != nil {
		h.writeError(w, "select", err)
		return
	}
	h.respond(w, res, ui.alerts)
}

func (h *CalendarEventHandler) Click(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	// An empty body is a click without a confirmation answer.
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ui := &answeredInteraction{confirmed: req.Confirmed}
	res, err := h.component.EventClick(r.Context(), id, ui)
	if err != nil {
		h.writeError(w, "event click", err)
		return
	}
	h.respond(w, res, ui.alerts)
}

func (h *CalendarEventHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	h.respond(w, calendar.Result{}, nil)
}

func (h *CalendarEventHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	in := calendar.FormInput{Title: req.Title}
	var err error
	if req.Start != "" {
		if in.Start, err = parseFlexibleTime(req.Start); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start must be RFC3339 or YYYY-MM-DDTHH:MM"})
			return
		}
	}
	if req.End != "" {
		if in.End, err = parseFlexibleTime(req.End); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end must be RFC3339 or YYYY-MM-DDTHH:MM"})
			return
		}
	}

	res, err := h.component.Submit(in)
	if err != nil {
		h.writeError(w, "submit form", err)
		return
	}
	h.respond(w, res, nil)
}

func (h *CalendarEventHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	h.component.Cancel()
	h.respond(w, calendar.Result{Outcome: calendar.OutcomeCancelled}, nil)
}

func (h *CalendarEventHandler) respond(w http.ResponseWriter, res calendar.Result, warnings []string) {
	resp := interactionResponse{
		State:    h.component.State(),
		Outcome:  res.Outcome,
		Event:    res.Event,
		Warnings: warnings,
		Events:   h.component.Events(),
	}
	if form, ok := h.component.Form(); ok {
		resp.Form = &formView{
			Form:       form,
			Label:      form.SubmitLabel(),
			StartInput: form.Start.UTC().Format(datetimeLocal),
			EndInput:   form.End.UTC().Format(datetimeLocal),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CalendarEventHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, calendar.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
	case errors.Is(err, calendar.ErrInvalidState):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, calendar.ErrTitleRequired),
		errors.Is(err, calendar.ErrTimeRequired),
		errors.Is(err, calendar.ErrInvalidRange),
		errors.Is(err, calendar.ErrNoInteraction):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.logger.Error(op+" failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// parseFlexibleTime accepts RFC3339, datetime-local values and plain dates.
// Values without an offset are taken as UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", datetimeLocal, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
