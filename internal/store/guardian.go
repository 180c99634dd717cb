package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/kidtask/internal/model"
)

type GuardianStore struct {
	db *sql.DB
}

func NewGuardianStore(db *sql.DB) *GuardianStore {
	return &GuardianStore{db: db}
}

const guardianCols = `id, name, role, created_at, updated_at`

func scanGuardian(scanner interface{ Scan(...any) error }) (*model.Guardian, error) {
	var g model.Guardian
	err := scanner.Scan(&g.ID, &g.Name, &g.Role, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GuardianStore) LoadAll() ([]model.Guardian, error) {
	rows, err := s.db.Query(`SELECT ` + guardianCols + ` FROM guardians ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query guardians: %w", err)
	}
	defer rows.Close()

	var guardians []model.Guardian
	for rows.Next() {
		g, err := scanGuardian(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guardian: %w", err)
		}
		guardians = append(guardians, *g)
	}
	return guardians, rows.Err()
}

func (s *GuardianStore) SaveAll(guardians []model.Guardian) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM guardians`); err != nil {
		return fmt.Errorf("clear guardians: %w", err)
	}
	for _, g := range guardians {
		_, err := tx.Exec(
			`INSERT INTO guardians (`+guardianCols+`) VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Role, g.CreatedAt, g.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert guardian %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit guardians: %w", err)
	}
	return nil
}
