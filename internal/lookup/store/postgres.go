package store

import (
	"context"
	"database/sql"
	"fmt"

	"partnerhub/internal/lookup/models"
	"partnerhub/pkg/platform/sentinel"
)

// PostgresStore reads lookup catalogs from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CountryByName(ctx context.Context, name string) (*models.Country, error) {
	var c models.Country
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, code FROM countries WHERE lower(name) = lower($1)`, name,
	).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) YearsOfExperienceByID(ctx context.Context, id int64) (*models.YearsOfExperience, error) {
	var y models.YearsOfExperience
	err := s.db.QueryRowContext(ctx,
		`SELECT id, label FROM years_of_experience WHERE id = $1`, id,
	).Scan(&y.ID, &y.Label)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find years of experience: %w", err)
	}
	return &y, nil
}

func (s *PostgresStore) BusinessStructureByID(ctx context.Context, id int64) (*models.BusinessStructure, error) {
	var b models.BusinessStructure
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM business_structures WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find business structure: %w", err)
	}
	return &b, nil
}
