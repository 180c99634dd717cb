package reward

import (
	"errors"
	"testing"

	"github.com/dukerupert/kidtask/internal/model"
)

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{250, 3},
		{900, 10},
		{1500, 10}, // capped
		{-5, 1},
	}
	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestLevelForPointsDeterministic(t *testing.T) {
	for _, p := range []int{0, 42, 100, 999} {
		if LevelForPoints(p) != LevelForPoints(p) {
			t.Fatalf("LevelForPoints(%d) not deterministic", p)
		}
	}
}

func TestCredit(t *testing.T) {
	c := model.Child{ID: "c1", Level: 1}

	if err := Credit(&c, 120); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if c.Points != 120 {
		t.Errorf("points = %d, want 120", c.Points)
	}
	if c.Level != 2 {
		t.Errorf("level = %d, want 2", c.Level)
	}

	// Zero credit is valid and changes nothing.
	if err := Credit(&c, 0); err != nil {
		t.Fatalf("credit zero: %v", err)
	}
	if c.Points != 120 || c.Level != 2 {
		t.Errorf("zero credit changed state: points=%d level=%d", c.Points, c.Level)
	}
}

func TestCreditNeverLowersLevel(t *testing.T) {
	c := model.Child{ID: "c1", Points: 250, Level: 3}
	for _, amount := range []int{0, 1, 50, 100, 1000} {
		before := c.Level
		if err := Credit(&c, amount); err != nil {
			t.Fatalf("credit %d: %v", amount, err)
		}
		if c.Level < before {
			t.Errorf("credit %d lowered level from %d to %d", amount, before, c.Level)
		}
	}
}

func TestCreditNegative(t *testing.T) {
	c := model.Child{ID: "c1", Points: 10, Level: 1}
	err := Credit(&c, -1)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if c.Points != 10 {
		t.Errorf("failed credit changed balance: %d", c.Points)
	}
}

func TestDebit(t *testing.T) {
	c := model.Child{ID: "c1", Points: 250, Level: 3}

	if err := Debit(&c, 200); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if c.Points != 50 {
		t.Errorf("points = %d, want 50", c.Points)
	}
	// Ladder policy: spending points can lower the level.
	if c.Level != 1 {
		t.Errorf("level = %d, want 1", c.Level)
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	c := model.Child{ID: "c1", Points: 50, Level: 1}

	err := Debit(&c, 51)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if c.Points != 50 || c.Level != 1 {
		t.Errorf("failed debit changed state: points=%d level=%d", c.Points, c.Level)
	}
}

func TestDebitNegative(t *testing.T) {
	c := model.Child{ID: "c1", Points: 50, Level: 1}
	if err := Debit(&c, -1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRecordRating(t *testing.T) {
	c := model.Child{ID: "c1", Level: 1}

	if err := RecordRating(&c, 4.5); err != nil {
		t.Fatalf("record rating: %v", err)
	}
	if err := RecordRating(&c, 3.5); err != nil {
		t.Fatalf("record rating: %v", err)
	}
	if c.RatingCount != 2 {
		t.Errorf("rating count = %d, want 2", c.RatingCount)
	}
	if avg := c.AverageRating(); avg != 4.0 {
		t.Errorf("average = %v, want 4.0", avg)
	}
}

func TestRecordRatingOutOfRange(t *testing.T) {
	c := model.Child{ID: "c1", Level: 1}
	for _, v := range []float64{0, 0.99, 5.01, -1} {
		if err := RecordRating(&c, v); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %v: expected ErrInvalidRating, got %v", v, err)
		}
	}
	if c.RatingCount != 0 {
		t.Errorf("invalid ratings were recorded: count=%d", c.RatingCount)
	}
}

func TestErrorMessageContext(t *testing.T) {
	err := TransitionError("task", "t1", "approved", "already approved")
	want := "task t1 (status approved): already approved"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("expected errors.Is(err, ErrInvalidTransition)")
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateTitle("task", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title: got %v", err)
	}
	long := make([]byte, MaxTitleLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateTitle("task", string(long)); !errors.Is(err, ErrValidation) {
		t.Errorf("long title: got %v", err)
	}
	if err := ValidateTaskPoints(0); !errors.Is(err, ErrValidation) {
		t.Errorf("zero points: got %v", err)
	}
	if err := ValidateTaskPoints(MaxTaskPoints + 1); !errors.Is(err, ErrValidation) {
		t.Errorf("too many points: got %v", err)
	}
	if err := ValidateWishCost(MaxWishCost + 1); !errors.Is(err, ErrValidation) {
		t.Errorf("cost too high: got %v", err)
	}
	if err := ValidateWishLevel(0); !errors.Is(err, ErrValidation) {
		t.Errorf("level zero: got %v", err)
	}
	if err := ValidateWishLevel(MaxWishLevel); err != nil {
		t.Errorf("max level should be valid: %v", err)
	}
}
