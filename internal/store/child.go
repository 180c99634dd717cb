// Package store persists the entity collections in SQLite. Every store
// exposes the coarse load/replace contract the services are written
// against: LoadAll returns the full collection, SaveAll replaces it in a
// single transaction. An empty table is not an error.
package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/kidtask/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

const childCols = `id, name, points, level, rating_sum, rating_count, created_at, updated_at`

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	err := scanner.Scan(&c.ID, &c.Name, &c.Points, &c.Level, &c.RatingSum, &c.RatingCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ChildStore) LoadAll() ([]model.Child, error) {
	rows, err := s.db.Query(`SELECT ` + childCols + ` FROM children ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

func (s *ChildStore) SaveAll(children []model.Child) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM children`); err != nil {
		return fmt.Errorf("clear children: %w", err)
	}
	for _, c := range children {
		_, err := tx.Exec(
			`INSERT INTO children (`+childCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Points, c.Level, c.RatingSum, c.RatingCount, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert child %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit children: %w", err)
	}
	return nil
}
