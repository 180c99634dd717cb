package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/kidtask/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, title, description, due_date, points, type, child_id, status, rating, assigned_by_id, assigned_by, created_at, updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var rating sql.NullFloat64

	err := scanner.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Points, &t.Type,
		&t.ChildID, &t.Status, &rating, &t.AssignedByID, &t.AssignedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		t.Rating = &rating.Float64
	}
	return &t, nil
}

func (s *TaskStore) LoadAll() ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskCols + ` FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) SaveAll(tasks []model.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for _, t := range tasks {
		var rating sql.NullFloat64
		if t.Rating != nil {
			rating = sql.NullFloat64{Float64: *t.Rating, Valid: true}
		}
		_, err := tx.Exec(
			`INSERT INTO tasks (`+taskCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, t.DueDate, t.Points, t.Type,
			t.ChildID, t.Status, rating, t.AssignedByID, t.AssignedBy, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}
