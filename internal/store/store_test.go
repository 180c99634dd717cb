package store

import (
	"testing"
	"time"

	"github.com/dukerupert/kidtask/internal/database"
	"github.com/dukerupert/kidtask/internal/model"
)

func setupTestDB(t *testing.T) (*ChildStore, *GuardianStore, *TaskStore, *WishStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewChildStore(db), NewGuardianStore(db), NewTaskStore(db), NewWishStore(db)
}

func TestEmptyStoreLoadsEmpty(t *testing.T) {
	cs, gs, ts, ws := setupTestDB(t)

	children, err := cs.LoadAll()
	if err != nil {
		t.Fatalf("load children: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("expected no children, got %d", len(children))
	}

	guardians, err := gs.LoadAll()
	if err != nil {
		t.Fatalf("load guardians: %v", err)
	}
	if len(guardians) != 0 {
		t.Errorf("expected no guardians, got %d", len(guardians))
	}

	tasks, err := ts.LoadAll()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}

	wishes, err := ws.LoadAll()
	if err != nil {
		t.Fatalf("load wishes: %v", err)
	}
	if len(wishes) != 0 {
		t.Errorf("expected no wishes, got %d", len(wishes))
	}
}

func TestChildSaveAllRoundTrip(t *testing.T) {
	cs, _, _, _ := setupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	children := []model.Child{
		{ID: "c1", Name: "Ada", Points: 120, Level: 2, RatingSum: 4.5, RatingCount: 1, CreatedAt: now, UpdatedAt: now},
		{ID: "c2", Name: "Ben", Points: 0, Level: 1, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)},
	}
	if err := cs.SaveAll(children); err != nil {
		t.Fatalf("save children: %v", err)
	}

	got, err := cs.LoadAll()
	if err != nil {
		t.Fatalf("load children: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 children, got %d", len(got))
	}
	if got[0].ID != "c1" || got[0].Points != 120 || got[0].Level != 2 {
		t.Errorf("child c1 = %+v", got[0])
	}
	if got[0].RatingSum != 4.5 || got[0].RatingCount != 1 {
		t.Errorf("child c1 ratings = %v/%d", got[0].RatingSum, got[0].RatingCount)
	}
}

func TestChildSaveAllReplaces(t *testing.T) {
	cs, _, _, _ := setupTestDB(t)

	now := time.Now().UTC()
	if err := cs.SaveAll([]model.Child{
		{ID: "c1", Name: "Ada", Level: 1, CreatedAt: now, UpdatedAt: now},
		{ID: "c2", Name: "Ben", Level: 1, CreatedAt: now, UpdatedAt: now},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Replace the whole collection with a single updated entry.
	if err := cs.SaveAll([]model.Child{
		{ID: "c1", Name: "Ada", Points: 50, Level: 1, CreatedAt: now, UpdatedAt: now},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := cs.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 child after replace, got %d", len(got))
	}
	if got[0].Points != 50 {
		t.Errorf("points = %d, want 50", got[0].Points)
	}
}

func TestTaskSaveAllRoundTrip(t *testing.T) {
	_, _, ts, _ := setupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	rating := 4.5
	tasks := []model.Task{
		{
			ID: "t1", Title: "Dishes", Description: "After dinner", DueDate: now.AddDate(0, 0, 1),
			Points: 120, Type: model.TaskTypeDaily, ChildID: "c1", Status: model.TaskStatusApproved,
			Rating: &rating, AssignedByID: "g1", AssignedBy: "Mom", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "t2", Title: "Homework", DueDate: now.AddDate(0, 0, 2), Points: 50,
			Type: model.TaskTypeOneTime, ChildID: "c1", Status: model.TaskStatusNew,
			AssignedByID: "g1", AssignedBy: "Mom", CreatedAt: now.Add(time.Second), UpdatedAt: now,
		},
	}
	if err := ts.SaveAll(tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}

	got, err := ts.LoadAll()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].Rating == nil || *got[0].Rating != 4.5 {
		t.Errorf("t1 rating = %v, want 4.5", got[0].Rating)
	}
	if got[1].Rating != nil {
		t.Errorf("t2 rating = %v, want nil", got[1].Rating)
	}
	if got[0].Status != model.TaskStatusApproved || got[1].Status != model.TaskStatusNew {
		t.Errorf("statuses = %s, %s", got[0].Status, got[1].Status)
	}
}

func TestWishSaveAllRoundTrip(t *testing.T) {
	_, _, _, ws := setupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	wishes := []model.Wish{
		{
			ID: "w1", Title: "Lego set", Cost: 100, MinLevel: 1, Category: "toys",
			ChildID: "c1", Status: model.WishStatusApproved, ApprovedByID: "g1",
			CreatedAt: now, UpdatedAt: now,
		},
	}
	if err := ws.SaveAll(wishes); err != nil {
		t.Fatalf("save wishes: %v", err)
	}

	got, err := ws.LoadAll()
	if err != nil {
		t.Fatalf("load wishes: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 wish, got %d", len(got))
	}
	if got[0].Status != model.WishStatusApproved || got[0].ApprovedByID != "g1" {
		t.Errorf("wish = %+v", got[0])
	}
}

func TestGuardianSaveAllRoundTrip(t *testing.T) {
	_, gs, _, _ := setupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	if err := gs.SaveAll([]model.Guardian{
		{ID: "g1", Name: "Mom", Role: model.RoleParent, CreatedAt: now, UpdatedAt: now},
		{ID: "g2", Name: "Ms. Lee", Role: model.RoleTeacher, CreatedAt: now.Add(time.Second), UpdatedAt: now},
	}); err != nil {
		t.Fatalf("save guardians: %v", err)
	}

	got, err := gs.LoadAll()
	if err != nil {
		t.Fatalf("load guardians: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 guardians, got %d", len(got))
	}
	if got[0].Role != model.RoleParent || got[1].Role != model.RoleTeacher {
		t.Errorf("roles = %s, %s", got[0].Role, got[1].Role)
	}
}
