package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/dbx"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresRoleRepository struct {
	db dbx.DBTX
}

func NewPostgresRoleRepository(db dbx.DBTX) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) Create(ctx context.Context, profileID string, role models.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profile_roles (id, profile_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (profile_id, role) DO NOTHING`,
		uuid.NewString(), profileID, role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRoleRepository) Roles(ctx context.Context, profileID string) ([]models.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role FROM profile_roles WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *PostgresRoleRepository) DeleteAll(ctx context.Context, profileID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM profile_roles WHERE profile_id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
