package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/service"
	"github.com/dukerupert/kidtask/internal/websocket"
)

type TaskHandler struct {
	svc *service.Service
	hub *websocket.Hub
}

func NewTaskHandler(svc *service.Service, hub *websocket.Hub) *TaskHandler {
	return &TaskHandler{svc: svc, hub: hub}
}

func (h *TaskHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

type taskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     time.Time      `json:"due_date"`
	Points      int            `json:"points"`
	Type        model.TaskType `json:"type"`
	ChildID     string         `json:"child_id"`
	GuardianID  string         `json:"guardian_id"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Type == "" {
		req.Type = model.TaskTypeOneTime
	}

	task, err := h.svc.AssignTask(strings.TrimSpace(req.Title), req.Description,
		req.DueDate, req.Points, req.Type, req.ChildID, req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("task", "created", task.ID, map[string]any{"child_id": task.ChildID}))
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.TaskFilter{
		ChildID: q.Get("child_id"),
		Status:  model.TaskStatus(q.Get("status")),
		Type:    model.TaskType(q.Get("type")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status " + string(filter.Status)})
		return
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown type " + string(filter.Type)})
		return
	}

	tasks, err := h.svc.ListTasks(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.GetTask(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type completeRequest struct {
	ChildID string `json:"child_id"`
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	task, err := h.svc.RequestCompletion(r.PathValue("id"), req.ChildID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("task", "completion_requested", task.ID, map[string]any{"child_id": task.ChildID}))
	writeJSON(w, http.StatusOK, task)
}

type approveTaskRequest struct {
	GuardianID string  `json:"guardian_id"`
	Rating     float64 `json:"rating"`
}

func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	task, err := h.svc.ApproveTask(r.PathValue("id"), req.GuardianID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("task", "approved", task.ID, map[string]any{
		"child_id": task.ChildID,
		"points":   task.Points,
	}))
	writeJSON(w, http.StatusOK, task)
}

type rejectRequest struct {
	GuardianID string `json:"guardian_id"`
}

func (h *TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	task, err := h.svc.RejectTask(r.PathValue("id"), req.GuardianID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.NewEvent("task", "rejected", task.ID, map[string]any{"child_id": task.ChildID}))
	writeJSON(w, http.StatusOK, task)
}
