package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresCommentRepository struct {
	db *sql.DB
}

func NewPostgresCommentRepository(db *sql.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

const commentColumns = `id, video_id, COALESCE(profile_id, ''), username, content, likes, created_at`

func scanComment(scan func(dest ...any) error) (*models.Comment, error) {
	c := &models.Comment{}
	err := scan(&c.ID, &c.VideoID, &c.ProfileID, &c.Username, &c.Content, &c.Likes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := `INSERT INTO comments (id, video_id, profile_id, username, content, likes, created_at)
	          VALUES ($1, $2, NULLIF($3, ''), $4, $5, 0, now())
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.VideoID, c.ProfileID, c.Username, c.Content).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresCommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row.Scan)
}

func (r *PostgresCommentRepository) ByVideo(ctx context.Context, videoID string) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE video_id = $1 ORDER BY created_at DESC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresCommentRepository) Count(ctx context.Context, videoID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM comments WHERE video_id = $1`, videoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresCommentRepository) AddLike(ctx context.Context, id string, delta int) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE comments SET likes = GREATEST(likes + $2, 0)
		 WHERE id = $1
		 RETURNING `+commentColumns, id, delta)
	return scanComment(row.Scan)
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE video_id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
