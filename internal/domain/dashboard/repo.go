package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Stats counts everything in one statement so the numbers come from a
// single snapshot.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM sites),
			(SELECT COUNT(*) FROM sites WHERE status = 'APPROVED'),
			(SELECT COUNT(*) FROM sites WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM sites WHERE status = 'REJECTED'),
			(SELECT COUNT(*) FROM submissions),
			(SELECT COUNT(*) FROM submissions WHERE status = 'APPROVED'),
			(SELECT COUNT(*) FROM submissions WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM submissions WHERE status = 'REJECTED')
	`).Scan(
		&s.Users.Total,
		&s.Sites.Total,
		&s.Sites.Approved,
		&s.Sites.Pending,
		&s.Sites.Rejected,
		&s.Submissions.Total,
		&s.Submissions.Approved,
		&s.Submissions.Pending,
		&s.Submissions.Rejected,
	)
	return s, err
}
