package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/calboard/internal/calendar"
	"github.com/dukerupert/calboard/internal/config"
	"github.com/dukerupert/calboard/internal/handler"
	"github.com/dukerupert/calboard/internal/middleware"
	"github.com/dukerupert/calboard/internal/store"
	ws "github.com/dukerupert/calboard/internal/websocket"
	"github.com/dukerupert/calboard/web"
)

type Server struct {
	hub             *ws.Hub
	kv              *store.KVStore
	storageKey      string
	component       *calendar.Component
	calendarEventH  *handler.CalendarEventHandler
	icsH            *handler.ICSHandler
	templateHandler *handler.TemplateHandler
	logger          *slog.Logger
}

// New wires the calendar component to its storage and the page hub. db may
// be nil when persistence is disabled.
func New(cfg *config.Config, db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	opts := calendar.Options{
		Mode:   cfg.Mode,
		Key:    cfg.StorageKey,
		Grid:   ws.NewGrid(hub),
		Logger: logger.With("component", "calendar"),
	}
	var kv *store.KVStore
	if cfg.Persist && db != nil {
		kv = store.NewKVStore(db)
		opts.KV = kv
	} else {
		opts.KV = store.NewMemoryKV()
	}
	component := calendar.New(opts)

	return &Server{
		hub:             hub,
		kv:              kv,
		storageKey:      cfg.StorageKey,
		component:       component,
		calendarEventH:  handler.NewCalendarEventHandler(component, logger.With("component", "calendar_api")),
		icsH:            handler.NewICSHandler(component, logger.With("component", "ics")),
		templateHandler: handler.NewTemplateHandler(cfg.Mode, cfg.Grid, logger.With("component", "template")),
		logger:          logger,
	}
}

// Component returns the calendar component backing the server.
func (s *Server) Component() *calendar.Component {
	return s.component
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	mux.HandleFunc("GET /health", s.healthHandler)

	// Page
	mux.HandleFunc("GET /", s.templateHandler.CalendarPage)

	// Calendar interaction API
	mux.HandleFunc("GET /api/events", s.calendarEventH.List)
	mux.HandleFunc("POST /api/selection", s.calendarEventH.Select)
	mux.HandleFunc("POST /api/events/{id}/click", s.calendarEventH.Click)
	mux.HandleFunc("GET /api/form", s.calendarEventH.GetForm)
	mux.HandleFunc("POST /api/form/submit", s.calendarEventH.SubmitForm)
	mux.HandleFunc("POST /api/form/cancel", s.calendarEventH.CancelForm)

	// Export
	mux.HandleFunc("GET /events.ics", s.icsH.Export)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"mode":    s.component.Mode(),
		"events":  len(s.component.Events()),
		"clients": s.hub.ClientCount(),
		"persist": s.kv != nil,
		"dropped": s.hub.Dropped(),
	}
	if s.kv != nil {
		entry, err := s.kv.Entry(s.storageKey)
		if err != nil {
			s.logger.Error("health: read storage entry", "error", err)
			body["status"] = "degraded"
		} else if entry != nil {
			body["saved_at"] = entry.UpdatedAt
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}
