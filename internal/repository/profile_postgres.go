package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/dbx"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, name, username, password, status, COALESCE(temp_username, ''), COALESCE(photo_id, ''), visible, created_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Username, &p.Password, &p.Status,
		&p.TempUsername, &p.PhotoID, &p.Visible, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO profiles (id, name, username, password, status, visible, created_at)
	          VALUES ($1, $2, $3, $4, $5, TRUE, now())
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Username, p.Password, p.Status).Scan(&p.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "profiles_username_visible_uniq") {
			return apperr.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	p.Visible = true
	return nil
}

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND visible = TRUE`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresProfileRepository) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1 AND visible = TRUE`
	return scanProfile(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresProfileRepository) UpdateStatus(ctx context.Context, id string, status models.GeneralStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpdatePassword(ctx context.Context, id, hash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET password = $2
		 WHERE id = $1 AND status = $3 AND visible = TRUE`,
		id, hash, models.StatusActive)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *PostgresProfileRepository) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET name = $2 WHERE id = $1 AND visible = TRUE`, id, name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpdateTempUsername(ctx context.Context, id, username string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET temp_username = $2 WHERE id = $1 AND visible = TRUE`, id, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) CommitUsername(ctx context.Context, id, tempUsername string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET username = temp_username, temp_username = NULL
		 WHERE id = $1 AND temp_username = $2 AND visible = TRUE`,
		id, tempUsername)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *PostgresProfileRepository) UpdatePhoto(ctx context.Context, id, photoID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET photo_id = NULLIF($2, '') WHERE id = $1 AND visible = TRUE`, id, photoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM profile_roles WHERE profile_id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET visible = FALSE WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *PostgresProfileRepository) Purge(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM profile_roles WHERE profile_id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM profiles WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

// Filter is the admin profile search: newest first, post count and role set
// aggregated per row. The comma-joined role string is a projection detail and
// is split back into a role set before leaving the repository.
func (r *PostgresProfileRepository) Filter(ctx context.Context, query string, offset, limit int) ([]models.ProfileDetail, int64, error) {
	fb := newFilterBuilder().Where("p.visible = TRUE")
	if q := strings.TrimSpace(query); q != "" {
		fb.Where("(p.id = ? OR lower(p.username) LIKE ? OR lower(p.name) LIKE ?)",
			q, likePattern(q), likePattern(q))
	}
	where := fb.SQL(1)

	selectQuery := `
		SELECT p.id, p.name, p.username, COALESCE(p.photo_id, ''), p.status, p.created_at,
		       (SELECT count(*) FROM posts post WHERE post.profile_id = p.id) AS post_count,
		       (SELECT COALESCE(string_agg(pr.role, ','), '') FROM profile_roles pr WHERE pr.profile_id = p.id) AS roles
		FROM profiles p` + where + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`
	selectQuery = renumber(selectQuery, len(fb.Args()))

	rows, err := r.db.QueryContext(ctx, selectQuery, fb.ArgsWith(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.ProfileDetail
	for rows.Next() {
		var d models.ProfileDetail
		var roles string
		if err := rows.Scan(&d.ID, &d.Name, &d.Username, &d.PhotoID, &d.Status,
			&d.CreatedAt, &d.PostCount, &roles); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		d.Roles = splitRoles(roles)
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	countQuery := `SELECT count(*) FROM profiles p` + where
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return list, total, nil
}

// renumber rewrites trailing ? markers (limit/offset) into the next $n
// placeholders after the predicate args.
func renumber(query string, usedArgs int) string {
	n := usedArgs + 1
	var sb strings.Builder
	for _, r := range query {
		if r == '?' {
			fmt.Fprintf(&sb, "$%d", n)
			n++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func splitRoles(joined string) []models.Role {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	roles := make([]models.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, models.Role(p))
	}
	return roles
}
