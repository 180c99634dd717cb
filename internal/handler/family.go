package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/service"
	"github.com/dukerupert/kidtask/internal/websocket"
)

// FamilyHandler covers child and guardian registration and the child
// summary queries.
type FamilyHandler struct {
	svc *service.Service
	hub *websocket.Hub
}

func NewFamilyHandler(svc *service.Service, hub *websocket.Hub) *FamilyHandler {
	return &FamilyHandler{svc: svc, hub: hub}
}

func (h *FamilyHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

type childRequest struct {
	Name string `json:"name"`
}

func (h *FamilyHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	child, err := h.svc.RegisterChild(strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("child", "created", child.ID, nil))
	writeJSON(w, http.StatusCreated, child)
}

func (h *FamilyHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.svc.ListChildren()
	if err != nil {
		writeError(w, err)
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *FamilyHandler) ChildSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ChildSummary(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type guardianRequest struct {
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

func (h *FamilyHandler) CreateGuardian(w http.ResponseWriter, r *http.Request) {
	var req guardianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	guardian, err := h.svc.RegisterGuardian(strings.TrimSpace(req.Name), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("guardian", "created", guardian.ID, nil))
	writeJSON(w, http.StatusCreated, guardian)
}

func (h *FamilyHandler) ListGuardians(w http.ResponseWriter, r *http.Request) {
	guardians, err := h.svc.ListGuardians()
	if err != nil {
		writeError(w, err)
		return
	}
	if guardians == nil {
		guardians = []model.Guardian{}
	}
	writeJSON(w, http.StatusOK, guardians)
}

func (h *FamilyHandler) RenameGuardian(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	guardian, err := h.svc.RenameGuardian(r.PathValue("id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("guardian", "updated", guardian.ID, nil))
	writeJSON(w, http.StatusOK, guardian)
}

type adjustRequest struct {
	Amount     int    `json:"amount"`
	GuardianID string `json:"guardian_id"`
}

func (h *FamilyHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	child, err := h.svc.CreditChild(r.PathValue("id"), req.Amount, req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("child", "credited", child.ID, map[string]any{"points": child.Points, "level": child.Level}))
	writeJSON(w, http.StatusOK, child)
}

func (h *FamilyHandler) Debit(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	child, err := h.svc.DebitChild(r.PathValue("id"), req.Amount, req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("child", "debited", child.ID, map[string]any{"points": child.Points, "level": child.Level}))
	writeJSON(w, http.StatusOK, child)
}
