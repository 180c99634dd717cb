package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/reward"
)

// TaskFilter narrows ListTasks. Zero values match everything.
type TaskFilter struct {
	ChildID string
	Status  model.TaskStatus
	Type    model.TaskType
}

// AssignTask creates a task in the "new" state for a child. Only a
// guardian may assign; the guardian's id and name are kept for audit.
func (s *Service) AssignTask(title, description string, dueDate time.Time, points int, taskType model.TaskType, childID, byGuardianID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := reward.ValidateTitle("task", title); err != nil {
		return nil, err
	}
	if err := reward.ValidateDescription("task", description); err != nil {
		return nil, err
	}
	if err := reward.ValidateTaskPoints(points); err != nil {
		return nil, err
	}
	if !taskType.IsValid() {
		return nil, reward.NewError(reward.ErrValidation, "task", "", "unknown task type "+string(taskType))
	}

	guardian, err := s.guardian(byGuardianID)
	if err != nil {
		return nil, err
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	if findChild(children, childID) < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", childID, "")
	}

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		Points:       points,
		Type:         taskType,
		ChildID:      childID,
		Status:       model.TaskStatusNew,
		AssignedByID: guardian.ID,
		AssignedBy:   guardian.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	tasks = append(tasks, task)

	if err := s.tasks.SaveAll(tasks); err != nil {
		return nil, storageErr("task", err)
	}

	s.logger.Info("task assigned", "task_id", task.ID, "child_id", childID, "points", points)
	return &task, nil
}

// ListTasks returns tasks matching the filter, in creation order.
func (s *Service) ListTasks(filter TaskFilter) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}

	var out []model.Task
	for _, t := range tasks {
		if filter.ChildID != "" && t.ChildID != filter.ChildID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// GetTask returns a single task by id.
func (s *Service) GetTask(taskID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}
	i := findTask(tasks, taskID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "task", taskID, "")
	}
	task := tasks[i]
	return &task, nil
}

// RequestCompletion moves a task from "new" to "pending_approval". Only the
// owning child may request completion; no points move yet.
func (s *Service) RequestCompletion(taskID, byChildID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}
	i := findTask(tasks, taskID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "task", taskID, "")
	}

	task := &tasks[i]
	if task.ChildID != byChildID {
		return nil, reward.NewError(reward.ErrNotAuthorized, "task", taskID, "task belongs to another child")
	}
	if task.Status != model.TaskStatusNew {
		return nil, reward.TransitionError("task", taskID, string(task.Status), "completion can only be requested once")
	}

	task.Status = model.TaskStatusPendingApproval
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.SaveAll(tasks); err != nil {
		return nil, storageErr("task", err)
	}

	s.logger.Info("completion requested", "task_id", taskID, "child_id", byChildID)
	out := *task
	return &out, nil
}

// ApproveTask moves a task from "pending_approval" to "approved", records
// the rating, and credits the owning child with the task's points. The
// status change and the ledger mutation commit together or not at all.
func (s *Service) ApproveTask(taskID, byGuardianID string, rating float64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.guardian(byGuardianID); err != nil {
		return nil, err
	}
	if err := reward.ValidateRating(rating); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}
	i := findTask(tasks, taskID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "task", taskID, "")
	}

	task := &tasks[i]
	if task.Status != model.TaskStatusPendingApproval {
		return nil, reward.TransitionError("task", taskID, string(task.Status), "only a pending task can be approved")
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	ci := findChild(children, task.ChildID)
	if ci < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", task.ChildID, "")
	}

	prevTasks := make([]model.Task, len(tasks))
	copy(prevTasks, tasks)

	now := time.Now().UTC()
	task.Status = model.TaskStatusApproved
	task.Rating = &rating
	task.UpdatedAt = now

	child := &children[ci]
	if err := reward.Credit(child, task.Points); err != nil {
		return nil, err
	}
	if err := reward.RecordRating(child, rating); err != nil {
		return nil, err
	}
	child.UpdatedAt = now

	if err := s.saveTasksAndChildren(tasks, prevTasks, children); err != nil {
		return nil, err
	}

	s.logger.Info("task approved", "task_id", taskID, "guardian_id", byGuardianID,
		"rating", rating, "child_points", child.Points, "child_level", child.Level)
	out := *task
	return &out, nil
}

// RejectTask moves a task from "pending_approval" to "rejected". No points
// move; rejected is terminal.
func (s *Service) RejectTask(taskID, byGuardianID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.guardian(byGuardianID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.LoadAll()
	if err != nil {
		return nil, storageErr("task", err)
	}
	i := findTask(tasks, taskID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "task", taskID, "")
	}

	task := &tasks[i]
	if task.Status != model.TaskStatusPendingApproval {
		return nil, reward.TransitionError("task", taskID, string(task.Status), "only a pending task can be rejected")
	}

	task.Status = model.TaskStatusRejected
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.SaveAll(tasks); err != nil {
		return nil, storageErr("task", err)
	}

	s.logger.Info("task rejected", "task_id", taskID, "guardian_id", byGuardianID)
	out := *task
	return &out, nil
}
