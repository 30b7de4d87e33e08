package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/dukerupert/calboard/internal/calendar"
	"github.com/dukerupert/calboard/internal/model"
)

const productID = "-//calboard//calboard//EN"

// ICSHandler exports the current event list as an iCalendar feed.
type ICSHandler struct {
	component *calendar.Component
	logger    *slog.Logger
	now       func() time.Time
}

func NewICSHandler(c *calendar.Component, logger *slog.Logger) *ICSHandler {
	return &ICSHandler{component: c, logger: logger, now: time.Now}
}

func (h *ICSHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(buildCalendar(h.component.Events(), h.now())); err != nil {
		h.logger.Error("encode ics", "error", err)
		http.Error(w, "failed to export calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calboard.ics"`)
	w.Write(buf.Bytes())
}

func buildCalendar(events []model.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, ev := range events {
		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, ev.ID)
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		vevent.Props.SetText(ical.PropSummary, ev.Title)
		if ev.AllDay {
			vevent.Props.SetDate(ical.PropDateTimeStart, ev.Start)
			vevent.Props.SetDate(ical.PropDateTimeEnd, ev.End)
		} else {
			vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.UTC())
			vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.UTC())
		}
		cal.Children = append(cal.Children, vevent.Component)
	}
	return cal
}
