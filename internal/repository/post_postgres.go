package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const postColumns = `id, title, COALESCE(content, ''), COALESCE(photo_id, ''), profile_id, visible, created_at`

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	p := &models.Post{}
	err := scan(&p.ID, &p.Title, &p.Content, &p.PhotoID, &p.ProfileID, &p.Visible, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresPostRepository) Create(ctx context.Context, p *models.Post) error {
	query := `INSERT INTO posts (id, title, content, photo_id, profile_id, visible, created_at)
	          VALUES ($1, $2, $3, NULLIF($4, ''), $5, TRUE, now())
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Content, p.PhotoID, p.ProfileID).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	p.Visible = true
	return nil
}

func (r *PostgresPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1 AND visible = TRUE`, id)
	return scanPost(row.Scan)
}

func (r *PostgresPostRepository) FindByProfile(ctx context.Context, profileID string, offset, limit int) ([]models.Post, int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE profile_id = $1 AND visible = TRUE
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM posts WHERE profile_id = $1 AND visible = TRUE`, profileID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return list, total, nil
}

func (r *PostgresPostRepository) OwnerID(ctx context.Context, postID string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT profile_id FROM posts WHERE id = $1 AND visible = TRUE`, postID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return ownerID, nil
}

func (r *PostgresPostRepository) Update(ctx context.Context, p *models.Post) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $2, content = $3, photo_id = NULLIF($4, '')
		 WHERE id = $1 AND visible = TRUE`,
		p.ID, p.Title, p.Content, p.PhotoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET visible = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Filter is the public post search: optional title query and an excluded id.
func (r *PostgresPostRepository) Filter(ctx context.Context, query, exceptID string, offset, limit int) ([]models.Post, int64, error) {
	fb := newFilterBuilder().Where("visible = TRUE").
		WhereIf(strings.TrimSpace(query) != "", "lower(title) LIKE ?", likePattern(query)).
		WhereIf(exceptID != "", "id <> ?", exceptID)
	where := fb.SQL(1)

	selectQuery := renumber(
		`SELECT `+postColumns+` FROM posts`+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		len(fb.Args()))

	rows, err := r.db.QueryContext(ctx, selectQuery, fb.ArgsWith(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM posts`+where, fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return list, total, nil
}

// AdminFilter joins the owning profile so admins can search by either side.
func (r *PostgresPostRepository) AdminFilter(ctx context.Context, profileQuery, postQuery string, offset, limit int) ([]models.PostDetail, int64, error) {
	fb := newFilterBuilder().Where("p.visible = TRUE").
		WhereIf(strings.TrimSpace(profileQuery) != "",
			"(lower(pr.name) LIKE ? OR lower(pr.username) LIKE ?)",
			likePattern(profileQuery), likePattern(profileQuery)).
		WhereIf(strings.TrimSpace(postQuery) != "",
			"(lower(p.title) LIKE ? OR p.id = ?)",
			likePattern(postQuery), strings.TrimSpace(postQuery))
	where := fb.SQL(1)

	base := ` FROM posts p INNER JOIN profiles pr ON pr.id = p.profile_id`
	selectQuery := renumber(
		`SELECT p.id, p.title, COALESCE(p.photo_id, ''), p.created_at,
		        pr.id, pr.name, pr.username`+base+where+`
		 ORDER BY p.created_at DESC LIMIT ? OFFSET ?`,
		len(fb.Args()))

	rows, err := r.db.QueryContext(ctx, selectQuery, fb.ArgsWith(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.PostDetail
	for rows.Next() {
		var d models.PostDetail
		if err := rows.Scan(&d.ID, &d.Title, &d.PhotoID, &d.CreatedAt,
			&d.ProfileID, &d.ProfileName, &d.ProfileUsername); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*)`+base+where, fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return list, total, nil
}

func (r *PostgresPostRepository) Similar(ctx context.Context, exceptID string, limit int) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE id <> $1 AND visible = TRUE
		 ORDER BY created_at DESC
		 LIMIT $2`, exceptID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var list []models.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
