package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/kidtask/internal/backup"
	"github.com/dukerupert/kidtask/internal/handler"
	"github.com/dukerupert/kidtask/internal/middleware"
	"github.com/dukerupert/kidtask/internal/service"
	"github.com/dukerupert/kidtask/internal/websocket"
)

type Server struct {
	hub       *websocket.Hub
	familyH   *handler.FamilyHandler
	taskH     *handler.TaskHandler
	wishH     *handler.WishHandler
	backupMgr *backup.Manager
	logger    *slog.Logger
}

func New(svc *service.Service, backupMgr *backup.Manager, logger *slog.Logger) *Server {
	hub := websocket.NewHub(logger.With("component", "websocket"))
	return &Server{
		hub:       hub,
		familyH:   handler.NewFamilyHandler(svc, hub),
		taskH:     handler.NewTaskHandler(svc, hub),
		wishH:     handler.NewWishHandler(svc, hub),
		backupMgr: backupMgr,
		logger:    logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", websocket.Handler(s.hub))

	// Family
	mux.HandleFunc("POST /children", s.familyH.CreateChild)
	mux.HandleFunc("GET /children", s.familyH.ListChildren)
	mux.HandleFunc("GET /children/{id}/summary", s.familyH.ChildSummary)
	mux.HandleFunc("POST /children/{id}/credit", s.familyH.Credit)
	mux.HandleFunc("POST /children/{id}/debit", s.familyH.Debit)
	mux.HandleFunc("GET /children/{id}/wishes", s.wishH.Visible)
	mux.HandleFunc("POST /guardians", s.familyH.CreateGuardian)
	mux.HandleFunc("GET /guardians", s.familyH.ListGuardians)
	mux.HandleFunc("PUT /guardians/{id}", s.familyH.RenameGuardian)

	// Tasks
	mux.HandleFunc("POST /tasks", s.taskH.Create)
	mux.HandleFunc("GET /tasks", s.taskH.List)
	mux.HandleFunc("GET /tasks/{id}", s.taskH.Get)
	mux.HandleFunc("POST /tasks/{id}/complete", s.taskH.Complete)
	mux.HandleFunc("POST /tasks/{id}/approve", s.taskH.Approve)
	mux.HandleFunc("POST /tasks/{id}/reject", s.taskH.Reject)

	// Wishes
	mux.HandleFunc("POST /wishes", s.wishH.Create)
	mux.HandleFunc("GET /wishes", s.wishH.List)
	mux.HandleFunc("POST /wishes/{id}/approve", s.wishH.Approve)
	mux.HandleFunc("POST /wishes/{id}/reject", s.wishH.Reject)
	mux.HandleFunc("POST /wishes/{id}/purchase", s.wishH.Purchase)

	// Backup
	mux.HandleFunc("GET /backup/status", s.backupStatusHandler)
	mux.HandleFunc("POST /backup", s.backupHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) backupStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.backupMgr.Status())
}

func (s *Server) backupHandler(w http.ResponseWriter, r *http.Request) {
	if !s.backupMgr.Enabled() {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "backup not configured"})
		return
	}
	if err := s.backupMgr.BackupNow(r.Context()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(s.backupMgr.Status())
}
