package model

import "time"

// Role is the closed set of actor roles. Guardians (parents and teachers)
// assign and approve; children complete tasks and request wishes.
type Role string

const (
	RoleChild   Role = "child"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
)

// IsValid reports whether the role is a known variant.
func (r Role) IsValid() bool {
	switch r {
	case RoleChild, RoleParent, RoleTeacher:
		return true
	default:
		return false
	}
}

// IsGuardian reports whether the role may approve tasks and wishes.
func (r Role) IsGuardian() bool {
	return r == RoleParent || r == RoleTeacher
}

type Child struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Points      int       `json:"points"`
	Level       int       `json:"level"`
	RatingSum   float64   `json:"rating_sum"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AverageRating returns the mean of all recorded ratings, or 0 when none
// have been recorded yet.
func (c Child) AverageRating() float64 {
	if c.RatingCount == 0 {
		return 0
	}
	return c.RatingSum / float64(c.RatingCount)
}

type Guardian struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
