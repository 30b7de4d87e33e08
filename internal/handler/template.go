package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dukerupert/calboard/internal/calendar"
	"github.com/dukerupert/calboard/web"
)

// pageConfig is handed to the page script as a JS object.
type pageConfig struct {
	Mode          calendar.Mode        `json:"mode"`
	Options       calendar.GridOptions `json:"options"`
	EventsURL     string               `json:"eventsUrl"`
	WebSocketPath string               `json:"wsPath"`
}

type TemplateHandler struct {
	templates *template.Template
	config    pageConfig
	logger    *slog.Logger
}

func NewTemplateHandler(mode calendar.Mode, opts calendar.GridOptions, logger *slog.Logger) *TemplateHandler {
	tmpl := template.Must(template.ParseFS(web.Templates, "templates/*.html"))
	return &TemplateHandler{
		templates: tmpl,
		config: pageConfig{
			Mode:          mode,
			Options:       opts,
			EventsURL:     "/api/events",
			WebSocketPath: "/ws",
		},
		logger: logger,
	}
}

func (h *TemplateHandler) CalendarPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{
		"Title":  "Calendar",
		"Dialog": h.config.Mode == calendar.ModeDialog,
		"Config": h.config,
	}
	h.render(w, "calendar.html", data)
}

func (h *TemplateHandler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
