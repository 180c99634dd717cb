package reward

import (
	"fmt"

	"github.com/dukerupert/kidtask/internal/model"
)

// Level policy: a points-threshold ladder. One level per PointsPerLevel
// points, starting at level 1, capped at MaxLevel. Debiting points can lower
// the level again; the ladder is the single source of truth for both the
// on-approval and on-demand recomputation paths.
const (
	PointsPerLevel = 100
	MaxLevel       = 10

	MinRating = 1.0
	MaxRating = 5.0
)

// LevelForPoints returns the level for a point balance. Pure and total:
// identical input always yields identical output.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	level := 1 + points/PointsPerLevel
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Credit adds amount to the child's balance and recomputes the level.
// The level never decreases on credit.
func Credit(c *model.Child, amount int) error {
	if amount < 0 {
		return NewError(ErrInvalidAmount, "child", c.ID, fmt.Sprintf("cannot credit negative amount %d", amount))
	}
	c.Points += amount
	c.Level = LevelForPoints(c.Points)
	return nil
}

// Debit subtracts amount from the child's balance and recomputes the level.
// If the balance is insufficient the child is left untouched; there is no
// partial debit.
func Debit(c *model.Child, amount int) error {
	if amount < 0 {
		return NewError(ErrInvalidAmount, "child", c.ID, fmt.Sprintf("cannot debit negative amount %d", amount))
	}
	if c.Points < amount {
		return NewError(ErrInsufficientBalance, "child", c.ID,
			fmt.Sprintf("balance %d is less than %d", c.Points, amount))
	}
	c.Points -= amount
	c.Level = LevelForPoints(c.Points)
	return nil
}

// RecordRating appends a rating to the child's running sum and count.
func RecordRating(c *model.Child, rating float64) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	c.RatingSum += rating
	c.RatingCount++
	return nil
}
