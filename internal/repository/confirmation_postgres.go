package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/dbx"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresConfirmationRepository struct {
	db *sql.DB
}

func NewPostgresConfirmationRepository(db *sql.DB) *PostgresConfirmationRepository {
	return &PostgresConfirmationRepository{db: db}
}

func (r *PostgresConfirmationRepository) Insert(ctx context.Context, address, code string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// supersede prior unused codes for this address
		if _, err := tx.ExecContext(ctx,
			`UPDATE email_history SET used = TRUE WHERE address = $1 AND used = FALSE`,
			address); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO email_history (id, address, code, used, created_at)
			 VALUES ($1, $2, $3, FALSE, now())`,
			uuid.NewString(), address, code); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *PostgresConfirmationRepository) Latest(ctx context.Context, address string) (*models.ConfirmationCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, address, code, used, created_at FROM email_history
		 WHERE address = $1 AND used = FALSE
		 ORDER BY created_at DESC
		 LIMIT 1`, address)

	c := &models.ConfirmationCode{}
	err := row.Scan(&c.ID, &c.Address, &c.Code, &c.Used, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresConfirmationRepository) Consume(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE email_history SET used = TRUE WHERE id = $1 AND used = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
