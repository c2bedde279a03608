package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresVideoRepository struct {
	db *sql.DB
}

func NewPostgresVideoRepository(db *sql.DB) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db}
}

const videoColumns = `id, title, COALESCE(caption, ''), COALESCE(location, ''), category,
	COALESCE(tags, ''), video_key, COALESCE(thumbnail_key, ''), status, views, likes,
	file_size, COALESCE(original_filename, ''), COALESCE(profile_id, ''), uploaded_at`

func scanVideo(scan func(dest ...any) error) (*models.Video, error) {
	v := &models.Video{}
	err := scan(&v.ID, &v.Title, &v.Caption, &v.Location, &v.Category, &v.Tags,
		&v.VideoKey, &v.ThumbnailKey, &v.Status, &v.Views, &v.Likes,
		&v.FileSize, &v.OriginalFilename, &v.ProfileID, &v.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresVideoRepository) Create(ctx context.Context, v *models.Video) error {
	query := `INSERT INTO videos (id, title, caption, location, category, tags, video_key,
	              thumbnail_key, status, views, likes, file_size, original_filename,
	              profile_id, uploaded_at)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7,
	              NULLIF($8, ''), $9, 0, 0, $10, NULLIF($11, ''), NULLIF($12, ''), now())
	          RETURNING uploaded_at`
	err := r.db.QueryRowContext(ctx, query,
		v.ID, v.Title, v.Caption, v.Location, v.Category, v.Tags, v.VideoKey,
		v.ThumbnailKey, v.Status, v.FileSize, v.OriginalFilename, v.ProfileID).Scan(&v.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepository) UpdateMeta(ctx context.Context, v *models.Video) error {
	query := `UPDATE videos
	          SET title = $2, caption = NULLIF($3, ''), location = NULLIF($4, ''),
	              category = $5, tags = NULLIF($6, ''), status = $7
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		v.ID, v.Title, v.Caption, v.Location, v.Category, v.Tags, v.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (*models.Video, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	return scanVideo(row.Scan)
}

func (r *PostgresVideoRepository) All(ctx context.Context) ([]models.Video, error) {
	return r.list(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY uploaded_at DESC`)
}

func (r *PostgresVideoRepository) ByStatus(ctx context.Context, status models.VideoStatus) ([]models.Video, error) {
	return r.list(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE status = $1 ORDER BY uploaded_at DESC`, status)
}

func (r *PostgresVideoRepository) list(ctx context.Context, query string, args ...any) ([]models.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Video
	for rows.Next() {
		v, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// AddLike adjusts the like counter, never below zero, and returns the row.
func (r *PostgresVideoRepository) AddLike(ctx context.Context, id string, delta int64) (*models.Video, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE videos SET likes = GREATEST(likes + $2, 0)
		 WHERE id = $1
		 RETURNING `+videoColumns, id, delta)
	return scanVideo(row.Scan)
}

func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
