package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/reward"
)

// ChildSummary is the read model for a child's ledger state.
type ChildSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Points        int     `json:"points"`
	Level         int     `json:"level"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// RegisterChild creates a child at zero points, level 1.
func (s *Service) RegisterChild(name string) (*model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := reward.ValidateTitle("child", name); err != nil {
		return nil, err
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}

	now := time.Now().UTC()
	child := model.Child{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    0,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	children = append(children, child)

	if err := s.children.SaveAll(children); err != nil {
		return nil, storageErr("child", err)
	}

	s.logger.Info("child registered", "child_id", child.ID, "name", child.Name)
	return &child, nil
}

// RegisterGuardian creates a guardian with a parent or teacher role.
func (s *Service) RegisterGuardian(name string, role model.Role) (*model.Guardian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := reward.ValidateTitle("guardian", name); err != nil {
		return nil, err
	}
	if !role.IsGuardian() {
		return nil, reward.NewError(reward.ErrValidation, "guardian", "", "role must be parent or teacher")
	}

	guardians, err := s.guardians.LoadAll()
	if err != nil {
		return nil, storageErr("guardian", err)
	}

	now := time.Now().UTC()
	guardian := model.Guardian{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	guardians = append(guardians, guardian)

	if err := s.guardians.SaveAll(guardians); err != nil {
		return nil, storageErr("guardian", err)
	}

	s.logger.Info("guardian registered", "guardian_id", guardian.ID, "role", guardian.Role)
	return &guardian, nil
}

// RenameGuardian updates a guardian's display name. Role is immutable.
func (s *Service) RenameGuardian(guardianID, name string) (*model.Guardian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := reward.ValidateTitle("guardian", name); err != nil {
		return nil, err
	}

	guardians, err := s.guardians.LoadAll()
	if err != nil {
		return nil, storageErr("guardian", err)
	}
	var found *model.Guardian
	for i := range guardians {
		if guardians[i].ID == guardianID {
			guardians[i].Name = name
			guardians[i].UpdatedAt = time.Now().UTC()
			found = &guardians[i]
			break
		}
	}
	if found == nil {
		return nil, reward.NewError(reward.ErrNotFound, "guardian", guardianID, "")
	}

	if err := s.guardians.SaveAll(guardians); err != nil {
		return nil, storageErr("guardian", err)
	}
	return found, nil
}

// ListChildren returns all registered children.
func (s *Service) ListChildren() ([]model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	return children, nil
}

// ListGuardians returns all registered guardians.
func (s *Service) ListGuardians() ([]model.Guardian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guardians, err := s.guardians.LoadAll()
	if err != nil {
		return nil, storageErr("guardian", err)
	}
	return guardians, nil
}

// ChildSummary returns the child's current balance, level, and rating
// statistics.
func (s *Service) ChildSummary(childID string) (*ChildSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	i := findChild(children, childID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", childID, "")
	}
	c := children[i]
	return &ChildSummary{
		ID:            c.ID,
		Name:          c.Name,
		Points:        c.Points,
		Level:         c.Level,
		AverageRating: c.AverageRating(),
		RatingCount:   c.RatingCount,
	}, nil
}

// CreditChild adds points to a child's balance outside the task flow
// (manual guardian adjustment). The level is recomputed by the ledger.
func (s *Service) CreditChild(childID string, amount int, byGuardianID string) (*model.Child, error) {
	return s.adjustBalance(childID, byGuardianID, func(c *model.Child) error {
		return reward.Credit(c, amount)
	})
}

// DebitChild removes points from a child's balance outside the wish flow.
// Fails with InsufficientBalance rather than going negative.
func (s *Service) DebitChild(childID string, amount int, byGuardianID string) (*model.Child, error) {
	return s.adjustBalance(childID, byGuardianID, func(c *model.Child) error {
		return reward.Debit(c, amount)
	})
}

func (s *Service) adjustBalance(childID, byGuardianID string, mutate func(*model.Child) error) (*model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.guardian(byGuardianID); err != nil {
		return nil, err
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	i := findChild(children, childID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", childID, "")
	}

	if err := mutate(&children[i]); err != nil {
		return nil, err
	}
	children[i].UpdatedAt = time.Now().UTC()

	if err := s.children.SaveAll(children); err != nil {
		return nil, storageErr("child", err)
	}

	child := children[i]
	s.logger.Info("balance adjusted", "child_id", child.ID, "points", child.Points, "level", child.Level)
	return &child, nil
}
