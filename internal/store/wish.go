package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/kidtask/internal/model"
)

type WishStore struct {
	db *sql.DB
}

func NewWishStore(db *sql.DB) *WishStore {
	return &WishStore{db: db}
}

const wishCols = `id, title, description, cost, min_level, category, child_id, status, approved_by_id, created_at, updated_at`

func scanWish(scanner interface{ Scan(...any) error }) (*model.Wish, error) {
	var w model.Wish
	err := scanner.Scan(&w.ID, &w.Title, &w.Description, &w.Cost, &w.MinLevel, &w.Category,
		&w.ChildID, &w.Status, &w.ApprovedByID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WishStore) LoadAll() ([]model.Wish, error) {
	rows, err := s.db.Query(`SELECT ` + wishCols + ` FROM wishes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query wishes: %w", err)
	}
	defer rows.Close()

	var wishes []model.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

func (s *WishStore) SaveAll(wishes []model.Wish) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM wishes`); err != nil {
		return fmt.Errorf("clear wishes: %w", err)
	}
	for _, w := range wishes {
		_, err := tx.Exec(
			`INSERT INTO wishes (`+wishCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.Title, w.Description, w.Cost, w.MinLevel, w.Category,
			w.ChildID, w.Status, w.ApprovedByID, w.CreatedAt, w.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert wish %s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wishes: %w", err)
	}
	return nil
}
