package submissions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Spok95/geosites/internal/apperr"
	"github.com/Spok95/geosites/internal/domain/access"
	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/infra/metrics"
)

type Store interface {
	Create(ctx context.Context, data SiteData, submitterID int64) (*Submission, error)
	GetByID(ctx context.Context, id int64) (*Submission, error)
	List(ctx context.Context, f Filter) ([]Submission, error)
	Review(ctx context.Context, id int64, decision Status, reviewerID int64, at time.Time) (*ReviewResult, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Notifier is told about workflow events after they are committed.
type Notifier interface {
	SubmissionCreated(ctx context.Context, s *Submission)
	SubmissionReviewed(ctx context.Context, s *Submission, site *sites.Site)
}

type nopNotifier struct{}

func (nopNotifier) SubmissionCreated(context.Context, *Submission) {}
func (nopNotifier) SubmissionReviewed(context.Context, *Submission, *sites.Site) {}

type Service struct {
	store  Store
	notify Notifier
	log    *slog.Logger
	now    func() time.Time
}

// NewService wires the workflow; notify may be nil.
func NewService(store Store, notify Notifier, log *slog.Logger) *Service {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Service{store: store, notify: notify, log: log, now: time.Now}
}

func notFound(id int64) error {
	return apperr.NotFound("SUBMISSION_NOT_FOUND", "Submission with ID %d not found", id)
}

func notPending() error {
	return apperr.Forbidden("SUBMISSION_NOT_PENDING", "Only pending submissions can be reviewed")
}

func (s *Service) Create(ctx context.Context, actor access.Actor, data SiteData) (*Submission, error) {
	sub, err := s.store.Create(ctx, data, actor.UserID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	s.log.Info("submission created", "submission_id", sub.ID, "submitter_id", actor.UserID)
	s.notify.SubmissionCreated(ctx, sub)
	return sub, nil
}

// FindAll lists submissions newest first; an empty status disables the filter.
func (s *Service) FindAll(ctx context.Context, status Status) ([]Submission, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", "Unknown submission status %q", status)
	}
	return s.store.List(ctx, Filter{Status: status})
}

func (s *Service) FindPending(ctx context.Context) ([]Submission, error) {
	return s.FindAll(ctx, StatusPending)
}

func (s *Service) FindByUser(ctx context.Context, userID int64) ([]Submission, error) {
	return s.store.List(ctx, Filter{SubmittedBy: userID})
}

func (s *Service) FindOne(ctx context.Context, id int64) (*Submission, error) {
	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, notFound(id)
	}
	return sub, nil
}

// Review settles a pending submission. It is single-shot: once APPROVED or
// REJECTED a submission can never be reviewed again, whoever asks. Approval
// creates a new APPROVED site owned by the submitter in the same transaction.
func (s *Service) Review(ctx context.Context, reviewer access.Actor, id int64, decision Status) (*Submission, error) {
	if !decision.Decision() {
		return nil, apperr.Validation("INVALID_DECISION", "Review status must be APPROVED or REJECTED")
	}
	sub, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != StatusPending {
		return nil, notPending()
	}

	res, err := s.store.Review(ctx, id, decision, reviewer.UserID, s.now().UTC())
	switch {
	case errors.Is(err, ErrNotPending):
		return nil, notPending()
	case errors.Is(err, ErrNotFound):
		return nil, notFound(id)
	case err != nil:
		return nil, apperr.FromStore(err)
	}

	metrics.ReviewDecisions.WithLabelValues(string(decision)).Inc()
	attrs := []any{"submission_id", id, "decision", decision, "reviewer_id", reviewer.UserID}
	if res.Site != nil {
		metrics.SitesMaterialized.Inc()
		attrs = append(attrs, "site_id", res.Site.ID)
	}
	s.log.Info("submission reviewed", attrs...)
	s.notify.SubmissionReviewed(ctx, res.Submission, res.Site)
	return res.Submission, nil
}

// Remove deletes a submission. Sites already materialized from it stay.
func (s *Service) Remove(ctx context.Context, actor access.Actor, id int64) error {
	sub, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, sub.SubmittedByID) {
		return apperr.Forbidden("SUBMISSION_FORBIDDEN", "You can only delete your own submissions")
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(id)
	}
	s.log.Info("submission deleted", "submission_id", id, "actor_id", actor.UserID)
	return nil
}
