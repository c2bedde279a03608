package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresAttachRepository struct {
	db *sql.DB
}

func NewPostgresAttachRepository(db *sql.DB) *PostgresAttachRepository {
	return &PostgresAttachRepository{db: db}
}

func (r *PostgresAttachRepository) Create(ctx context.Context, a *models.Attach) error {
	query := `INSERT INTO attaches (id, key, path, extension, origin_name, size, visible, created_at)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, TRUE, now())
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.Key, a.Path, a.Extension, a.OriginName, a.Size).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	a.Visible = true
	return nil
}

func (r *PostgresAttachRepository) FindByID(ctx context.Context, id string) (*models.Attach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, key, COALESCE(path, ''), COALESCE(extension, ''), COALESCE(origin_name, ''),
		        size, visible, created_at
		 FROM attaches WHERE id = $1 AND visible = TRUE`, id)

	a := &models.Attach{}
	err := row.Scan(&a.ID, &a.Key, &a.Path, &a.Extension, &a.OriginName,
		&a.Size, &a.Visible, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresAttachRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE attaches SET visible = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
