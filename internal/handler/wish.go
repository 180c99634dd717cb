package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/service"
	"github.com/dukerupert/kidtask/internal/websocket"
)

type WishHandler struct {
	svc *service.Service
	hub *websocket.Hub
}

func NewWishHandler(svc *service.Service, hub *websocket.Hub) *WishHandler {
	return &WishHandler{svc: svc, hub: hub}
}

func (h *WishHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

type wishRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	MinLevel    int    `json:"min_level"`
	Category    string `json:"category"`
	ChildID     string `json:"child_id"`
}

func (h *WishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.MinLevel == 0 {
		req.MinLevel = 1
	}

	wish, err := h.svc.RequestWish(strings.TrimSpace(req.Title), req.Description,
		req.Cost, req.MinLevel, req.Category, req.ChildID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("wish", "created", wish.ID, map[string]any{"child_id": wish.ChildID}))
	writeJSON(w, http.StatusCreated, wish)
}

func (h *WishHandler) List(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.svc.ListWishes(r.URL.Query().Get("child_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if wishes == nil {
		wishes = []model.Wish{}
	}
	writeJSON(w, http.StatusOK, wishes)
}

// Visible lists the approved wishes a child's level already unlocks.
func (h *WishHandler) Visible(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.svc.WishesVisibleTo(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if wishes == nil {
		wishes = []model.Wish{}
	}
	writeJSON(w, http.StatusOK, wishes)
}

func (h *WishHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	wish, err := h.svc.ApproveWish(r.PathValue("id"), req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("wish", "approved", wish.ID, map[string]any{"child_id": wish.ChildID}))
	writeJSON(w, http.StatusOK, wish)
}

func (h *WishHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	wish, err := h.svc.RejectWish(r.PathValue("id"), req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("wish", "rejected", wish.ID, map[string]any{"child_id": wish.ChildID}))
	writeJSON(w, http.StatusOK, wish)
}

func (h *WishHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	wish, err := h.svc.PurchaseWish(r.PathValue("id"), req.ChildID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("wish", "purchased", wish.ID, map[string]any{
		"child_id": wish.ChildID,
		"cost":     wish.Cost,
	}))
	writeJSON(w, http.StatusOK, wish)
}
