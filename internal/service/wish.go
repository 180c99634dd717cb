package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/kidtask/internal/model"
	"github.com/dukerupert/kidtask/internal/reward"
)

// RequestWish creates a wish in the "pending" state for the requesting
// child.
func (s *Service) RequestWish(title, description string, cost, minLevel int, category, byChildID string) (*model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := reward.ValidateTitle("wish", title); err != nil {
		return nil, err
	}
	if err := reward.ValidateDescription("wish", description); err != nil {
		return nil, err
	}
	if err := reward.ValidateWishCost(cost); err != nil {
		return nil, err
	}
	if err := reward.ValidateWishLevel(minLevel); err != nil {
		return nil, err
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	if findChild(children, byChildID) < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", byChildID, "")
	}

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}

	now := time.Now().UTC()
	wish := model.Wish{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Cost:        cost,
		MinLevel:    minLevel,
		Category:    category,
		ChildID:     byChildID,
		Status:      model.WishStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	wishes = append(wishes, wish)

	if err := s.wishes.SaveAll(wishes); err != nil {
		return nil, storageErr("wish", err)
	}

	s.logger.Info("wish requested", "wish_id", wish.ID, "child_id", byChildID, "cost", cost)
	return &wish, nil
}

// ListWishes returns all wishes, optionally narrowed to one child.
func (s *Service) ListWishes(childID string) ([]model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}
	if childID == "" {
		return wishes, nil
	}

	var out []model.Wish
	for _, w := range wishes {
		if w.ChildID == childID {
			out = append(out, w)
		}
	}
	return out, nil
}

// WishesVisibleTo returns the approved wishes whose minimum level the
// child has already reached.
func (s *Service) WishesVisibleTo(childID string) ([]model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	ci := findChild(children, childID)
	if ci < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", childID, "")
	}
	level := children[ci].Level

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}

	var out []model.Wish
	for _, w := range wishes {
		if w.Status == model.WishStatusApproved && w.MinLevel <= level {
			out = append(out, w)
		}
	}
	return out, nil
}

// ApproveWish moves a wish from "pending" to "approved" and records the
// approving guardian. No points move: approval marks eligibility, purchase
// charges.
func (s *Service) ApproveWish(wishID, byGuardianID string) (*model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guardian, err := s.guardian(byGuardianID)
	if err != nil {
		return nil, err
	}

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}
	i := findWish(wishes, wishID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "wish", wishID, "")
	}

	wish := &wishes[i]
	if wish.Status != model.WishStatusPending {
		return nil, reward.TransitionError("wish", wishID, string(wish.Status), "only a pending wish can be approved")
	}

	wish.Status = model.WishStatusApproved
	wish.ApprovedByID = guardian.ID
	wish.UpdatedAt = time.Now().UTC()

	if err := s.wishes.SaveAll(wishes); err != nil {
		return nil, storageErr("wish", err)
	}

	s.logger.Info("wish approved", "wish_id", wishID, "guardian_id", guardian.ID)
	out := *wish
	return &out, nil
}

// RejectWish moves a wish from "pending" to "rejected".
func (s *Service) RejectWish(wishID, byGuardianID string) (*model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.guardian(byGuardianID); err != nil {
		return nil, err
	}

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}
	i := findWish(wishes, wishID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "wish", wishID, "")
	}

	wish := &wishes[i]
	if wish.Status != model.WishStatusPending {
		return nil, reward.TransitionError("wish", wishID, string(wish.Status), "only a pending wish can be rejected")
	}

	wish.Status = model.WishStatusRejected
	wish.UpdatedAt = time.Now().UTC()

	if err := s.wishes.SaveAll(wishes); err != nil {
		return nil, storageErr("wish", err)
	}

	s.logger.Info("wish rejected", "wish_id", wishID, "guardian_id", byGuardianID)
	out := *wish
	return &out, nil
}

// PurchaseWish spends the child's points on an approved wish. Eligibility
// is the wish's minimum level; the ledger debit is the single authority on
// whether the balance suffices. The wish status and the debit commit
// together or not at all.
func (s *Service) PurchaseWish(wishID, childID string) (*model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wishes, err := s.wishes.LoadAll()
	if err != nil {
		return nil, storageErr("wish", err)
	}
	i := findWish(wishes, wishID)
	if i < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "wish", wishID, "")
	}

	wish := &wishes[i]
	if wish.ChildID != childID {
		return nil, reward.NewError(reward.ErrNotAuthorized, "wish", wishID, "wish belongs to another child")
	}
	if wish.Status != model.WishStatusApproved {
		return nil, reward.TransitionError("wish", wishID, string(wish.Status), "only an approved wish can be purchased")
	}

	children, err := s.children.LoadAll()
	if err != nil {
		return nil, storageErr("child", err)
	}
	ci := findChild(children, childID)
	if ci < 0 {
		return nil, reward.NewError(reward.ErrNotFound, "child", childID, "")
	}

	child := &children[ci]
	if child.Level < wish.MinLevel {
		return nil, reward.NewError(reward.ErrNotEligible, "wish", wishID,
			fmt.Sprintf("requires level %d, child is level %d", wish.MinLevel, child.Level))
	}

	prevWishes := make([]model.Wish, len(wishes))
	copy(prevWishes, wishes)

	if err := reward.Debit(child, wish.Cost); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wish.Status = model.WishStatusPurchased
	wish.UpdatedAt = now
	child.UpdatedAt = now

	if err := s.saveWishesAndChildren(wishes, prevWishes, children); err != nil {
		return nil, err
	}

	s.logger.Info("wish purchased", "wish_id", wishID, "child_id", childID,
		"cost", wish.Cost, "balance", child.Points)
	out := *wish
	return &out, nil
}
