package reward

import "fmt"

// Input bounds shared by tasks and wishes.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000

	MaxTaskPoints = 1000
	MaxWishCost   = 10000
	MaxWishLevel  = 100
)

// ValidateTitle checks the non-empty and length bounds for titles.
func ValidateTitle(entity, title string) error {
	if title == "" {
		return NewError(ErrValidation, entity, "", "title is required")
	}
	if len(title) > MaxTitleLen {
		return NewError(ErrValidation, entity, "", fmt.Sprintf("title exceeds %d characters", MaxTitleLen))
	}
	return nil
}

// ValidateDescription checks the length bound for descriptions.
func ValidateDescription(entity, description string) error {
	if len(description) > MaxDescriptionLen {
		return NewError(ErrValidation, entity, "", fmt.Sprintf("description exceeds %d characters", MaxDescriptionLen))
	}
	return nil
}

// ValidateTaskPoints checks the reward bound for a task.
func ValidateTaskPoints(points int) error {
	if points <= 0 || points > MaxTaskPoints {
		return NewError(ErrValidation, "task", "", fmt.Sprintf("points must be in 1..%d, got %d", MaxTaskPoints, points))
	}
	return nil
}

// ValidateWishCost checks the cost bound for a wish.
func ValidateWishCost(cost int) error {
	if cost <= 0 || cost > MaxWishCost {
		return NewError(ErrValidation, "wish", "", fmt.Sprintf("cost must be in 1..%d, got %d", MaxWishCost, cost))
	}
	return nil
}

// ValidateWishLevel checks the minimum-level bound for a wish.
func ValidateWishLevel(minLevel int) error {
	if minLevel < 1 || minLevel > MaxWishLevel {
		return NewError(ErrValidation, "wish", "", fmt.Sprintf("min level must be in 1..%d, got %d", MaxWishLevel, minLevel))
	}
	return nil
}

// ValidateRating checks the rating bound.
func ValidateRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return NewError(ErrInvalidRating, "rating", "",
			fmt.Sprintf("rating must be between %.1f and %.1f, got %.1f", MinRating, MaxRating, rating))
	}
	return nil
}
