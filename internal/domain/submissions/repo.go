package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/users"
)

var (
	ErrNotFound   = errors.New("submissions: not found")
	ErrNotPending = errors.New("submissions: not pending")
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const submissionSelect = `
	SELECT sb.id, sb.site_data, sb.status, sb.submitted_by_id, sb.reviewed_by_id, sb.reviewed_at,
	       sb.created_at, sb.updated_at,
	       su.email, su.role, ru.email, ru.role
	FROM submissions sb
	JOIN users su ON su.id = sb.submitted_by_id
	LEFT JOIN users ru ON ru.id = sb.reviewed_by_id`

func scanSubmission(row pgx.Row) (*Submission, error) {
	var (
		s         Submission
		raw       []byte
		submitter users.Ref
		revEmail  *string
		revRole   *string
	)
	if err := row.Scan(
		&s.ID,
		&raw,
		&s.Status,
		&s.SubmittedByID,
		&s.ReviewedByID,
		&s.ReviewedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
		&submitter.Email,
		&submitter.Role,
		&revEmail,
		&revRole,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.SiteData); err != nil {
		return nil, fmt.Errorf("decode site_data of submission %d: %w", s.ID, err)
	}
	submitter.ID = s.SubmittedByID
	s.SubmittedBy = &submitter
	if s.ReviewedByID != nil && revEmail != nil {
		s.ReviewedBy = &users.Ref{ID: *s.ReviewedByID, Email: *revEmail, Role: users.Role(derefString(revRole))}
	}
	return &s, nil
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func getByID(ctx context.Context, q sites.DBTX, id int64) (*Submission, error) {
	s, err := scanSubmission(q.QueryRow(ctx, submissionSelect+` WHERE sb.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *Repo) Create(ctx context.Context, data SiteData, submitterID int64) (*Submission, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var id int64
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO submissions (site_data, submitted_by_id)
		VALUES ($1,$2)
		RETURNING id
	`, raw, submitterID).Scan(&id); err != nil {
		return nil, err
	}
	return getByID(ctx, r.pool, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Submission, error) {
	return getByID(ctx, r.pool, id)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]Submission, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// List returns submissions newest first, narrowed by the non-zero fields of f.
func (r *Repo) List(ctx context.Context, f Filter) ([]Submission, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("sb.status = $%d", len(args)))
	}
	if f.SubmittedBy != 0 {
		args = append(args, f.SubmittedBy)
		where = append(where, fmt.Sprintf("sb.submitted_by_id = $%d", len(args)))
	}
	q := submissionSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sb.created_at DESC, sb.id DESC"
	return r.query(ctx, q, args...)
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Submission, error) {
	return r.query(ctx, submissionSelect+` ORDER BY sb.created_at DESC, sb.id DESC LIMIT $1`, limit)
}

// Review moves a pending submission to decision and, for APPROVED, inserts
// the site it describes, all in one transaction. The status change only
// matches a row that is still PENDING, so of two concurrent reviews the
// second finds nothing to update and gets ErrNotPending.
func (r *Repo) Review(ctx context.Context, id int64, decision Status, reviewerID int64, at time.Time) (*ReviewResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		raw         []byte
		submitterID int64
	)
	err = tx.QueryRow(ctx, `
		UPDATE submissions
		SET status = $2, reviewed_by_id = $3, reviewed_at = $4, updated_at = now()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING site_data, submitted_by_id
	`, id, string(decision), reviewerID, at).Scan(&raw, &submitterID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM submissions WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, err
	}

	res := &ReviewResult{}
	if decision == StatusApproved {
		var data SiteData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode site_data of submission %d: %w", id, err)
		}
		res.Site, err = sites.Insert(ctx, tx, data.SiteInput(), sites.StatusApproved, submitterID)
		if err != nil {
			return nil, fmt.Errorf("materialize site: %w", err)
		}
	}

	res.Submission, err = getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
