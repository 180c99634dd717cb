package model

import "time"

// WishStatus is the lifecycle state of a wish. Approval only marks the wish
// eligible; points move on purchase. Purchased and rejected are terminal.
type WishStatus string

const (
	WishStatusPending   WishStatus = "pending"
	WishStatusApproved  WishStatus = "approved"
	WishStatusRejected  WishStatus = "rejected"
	WishStatusPurchased WishStatus = "purchased"
)

// IsValid reports whether the status is a known variant.
func (s WishStatus) IsValid() bool {
	switch s {
	case WishStatusPending, WishStatusApproved, WishStatusRejected, WishStatusPurchased:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is legal.
func (s WishStatus) IsTerminal() bool {
	return s == WishStatusRejected || s == WishStatusPurchased
}

type Wish struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	MinLevel    int        `json:"min_level"`
	Category    string     `json:"category"`
	ChildID     string     `json:"child_id"`
	Status      WishStatus `json:"status"`
	// ApprovedByID is set exactly once, when a guardian approves the wish.
	ApprovedByID string    `json:"approved_by_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
