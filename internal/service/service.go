// Package service implements the task and wish lifecycles on top of the
// repository contract. Every state-changing operation runs as one unit:
// read, validate, mutate, persist, serialized by a single mutex so two
// operations can never interleave their load/save windows.
package service

import (
	"log/slog"
	"sync"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/reward"
)

// Repositories expose coarse load/replace persistence per entity
// collection. An empty store yields an empty slice, not an error.

type ChildRepository interface {
	LoadAll() ([]model.Child, error)
	SaveAll([]model.Child) error
}

type GuardianRepository interface {
	LoadAll() ([]model.Guardian, error)
	SaveAll([]model.Guardian) error
}

type TaskRepository interface {
	LoadAll() ([]model.Task, error)
	SaveAll([]model.Task) error
}

type WishRepository interface {
	LoadAll() ([]model.Wish, error)
	SaveAll([]model.Wish) error
}

type Service struct {
	mu        sync.Mutex
	children  ChildRepository
	guardians GuardianRepository
	tasks     TaskRepository
	wishes    WishRepository
	logger    *slog.Logger
}

func New(children ChildRepository, guardians GuardianRepository, tasks TaskRepository, wishes WishRepository, logger *slog.Logger) *Service {
	return &Service{
		children:  children,
		guardians: guardians,
		tasks:     tasks,
		wishes:    wishes,
		logger:    logger,
	}
}

func storageErr(entity string, err error) error {
	return reward.NewError(reward.ErrStorage, entity, "", err.Error())
}

// guardian returns the guardian with the given actor id, or NotAuthorized.
// An id that does not name a guardian is an authorization failure, not a
// missing entity: the actor simply is not allowed to approve.
func (s *Service) guardian(actorID string) (*model.Guardian, error) {
	guardians, err := s.guardians.LoadAll()
	if err != nil {
		return nil, storageErr("guardian", err)
	}
	for i := range guardians {
		if guardians[i].ID == actorID {
			if !guardians[i].Role.IsGuardian() {
				return nil, reward.NewError(reward.ErrNotAuthorized, "guardian", actorID, "role may not approve")
			}
			return &guardians[i], nil
		}
	}
	return nil, reward.NewError(reward.ErrNotAuthorized, "guardian", actorID, "actor is not a guardian")
}

func findChild(children []model.Child, id string) int {
	for i := range children {
		if children[i].ID == id {
			return i
		}
	}
	return -1
}

func findTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func findWish(wishes []model.Wish, id string) int {
	for i := range wishes {
		if wishes[i].ID == id {
			return i
		}
	}
	return -1
}

// saveTasksAndChildren persists both collections touched by a task
// approval. If the second save fails, the first is restored from its
// pre-mutation snapshot so subsequent reads never observe a half-applied
// approval.
func (s *Service) saveTasksAndChildren(tasks, prevTasks []model.Task, children []model.Child) error {
	if err := s.tasks.SaveAll(tasks); err != nil {
		return storageErr("task", err)
	}
	if err := s.children.SaveAll(children); err != nil {
		if rbErr := s.tasks.SaveAll(prevTasks); rbErr != nil {
			s.logger.Error("task rollback failed", "error", rbErr)
		}
		return storageErr("child", err)
	}
	return nil
}

// saveWishesAndChildren is the purchase counterpart of
// saveTasksAndChildren.
func (s *Service) saveWishesAndChildren(wishes, prevWishes []model.Wish, children []model.Child) error {
	if err := s.wishes.SaveAll(wishes); err != nil {
		return storageErr("wish", err)
	}
	if err := s.children.SaveAll(children); err != nil {
		if rbErr := s.wishes.SaveAll(prevWishes); rbErr != nil {
			s.logger.Error("wish rollback failed", "error", rbErr)
		}
		return storageErr("child", err)
	}
	return nil
}
