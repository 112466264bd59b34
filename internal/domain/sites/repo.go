package sites

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/geosites/internal/domain/users"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so Insert can run
// inside a caller's transaction.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func selectFrom(src string) string {
	return `
		SELECT s.id, s.name, s.description, s.location, s.status, s.created_by_id, s.created_at, s.updated_at,
		       u.email, u.role
		FROM ` + src + ` s
		JOIN users u ON u.id = s.created_by_id`
}

func scanSite(row pgx.Row) (*Site, error) {
	var (
		s   Site
		loc []byte
		ref users.Ref
	)
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&loc,
		&s.Status,
		&s.CreatedByID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&ref.Email,
		&ref.Role,
	); err != nil {
		return nil, err
	}
	s.Location = json.RawMessage(loc)
	ref.ID = s.CreatedByID
	s.CreatedBy = &ref
	return &s, nil
}

func scanOne(row pgx.Row) (*Site, error) {
	s, err := scanSite(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// Insert creates a site through q and returns it with its owner attached.
func Insert(ctx context.Context, q DBTX, in Input, status Status, ownerID int64) (*Site, error) {
	row := q.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO sites (name, description, location, status, created_by_id)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING *
		)`+selectFrom("ins"),
		in.Name, in.Description, []byte(in.Location), string(status), ownerID)
	return scanSite(row)
}

func (r *Repo) Create(ctx context.Context, in Input, ownerID int64) (*Site, error) {
	return Insert(ctx, r.pool, in, StatusPending, ownerID)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Site, error) {
	return scanOne(r.pool.QueryRow(ctx, selectFrom("sites")+` WHERE s.id = $1`, id))
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Site, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// List returns sites newest first; an empty status means every status.
func (r *Repo) List(ctx context.Context, status Status) ([]Site, error) {
	if status == "" {
		return r.list(ctx, selectFrom("sites")+` ORDER BY s.created_at DESC, s.id DESC`)
	}
	return r.list(ctx, selectFrom("sites")+` WHERE s.status = $1 ORDER BY s.created_at DESC, s.id DESC`, string(status))
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Site, error) {
	return r.list(ctx, selectFrom("sites")+` ORDER BY s.created_at DESC, s.id DESC LIMIT $1`, limit)
}

func (r *Repo) Update(ctx context.Context, id int64, p Patch) (*Site, error) {
	var loc []byte
	if p.Location != nil {
		loc = []byte(p.Location)
	}
	row := r.pool.QueryRow(ctx, `
		WITH upd AS (
			UPDATE sites SET
				name        = COALESCE($2, name),
				description = COALESCE($3, description),
				location    = COALESCE($4::jsonb, location),
				updated_at  = now()
			WHERE id = $1
			RETURNING *
		)`+selectFrom("upd"), id, p.Name, p.Description, loc)
	return scanOne(row)
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) (*Site, error) {
	row := r.pool.QueryRow(ctx, `
		WITH upd AS (
			UPDATE sites SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)`+selectFrom("upd"), id, string(status))
	return scanOne(row)
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
