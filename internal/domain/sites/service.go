package sites

import (
	"context"
	"log/slog"

	"github.com/Spok95/geosites/internal/apperr"
	"github.com/Spok95/geosites/internal/domain/access"
)

type Store interface {
	Create(ctx context.Context, in Input, ownerID int64) (*Site, error)
	GetByID(ctx context.Context, id int64) (*Site, error)
	List(ctx context.Context, status Status) ([]Site, error)
	Update(ctx context.Context, id int64, p Patch) (*Site, error)
	SetStatus(ctx context.Context, id int64, status Status) (*Site, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func notFound(id int64) error {
	return apperr.NotFound("SITE_NOT_FOUND", "Site with ID %d not found", id)
}

// Create stores a pending site owned by the caller.
func (s *Service) Create(ctx context.Context, actor access.Actor, in Input) (*Site, error) {
	site, err := s.store.Create(ctx, in, actor.UserID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	s.log.Info("site created", "site_id", site.ID, "owner_id", actor.UserID)
	return site, nil
}

// FindApproved is the public listing.
func (s *Service) FindApproved(ctx context.Context) ([]Site, error) {
	return s.store.List(ctx, StatusApproved)
}

// FindAll lists sites in any status; an empty status disables the filter.
func (s *Service) FindAll(ctx context.Context, status Status) ([]Site, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", "Unknown site status %q", status)
	}
	return s.store.List(ctx, status)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*Site, error) {
	site, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, notFound(id)
	}
	return site, nil
}

func (s *Service) Update(ctx context.Context, actor access.Actor, id int64, p Patch) (*Site, error) {
	site, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor, site.CreatedByID) {
		return nil, apperr.Forbidden("SITE_FORBIDDEN", "You can only update your own sites")
	}
	if p.Empty() {
		return site, nil
	}
	updated, err := s.store.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound(id)
	}
	s.log.Info("site updated", "site_id", id, "actor_id", actor.UserID)
	return updated, nil
}

// UpdateStatus lets an admin move a site between any two statuses. Unlike
// submission review there is no state machine here.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Site, error) {
	if !status.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", "Unknown site status %q", status)
	}
	site, err := s.store.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, notFound(id)
	}
	s.log.Info("site status changed", "site_id", id, "status", status)
	return site, nil
}

func (s *Service) Remove(ctx context.Context, actor access.Actor, id int64) error {
	site, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, site.CreatedByID) {
		return apperr.Forbidden("SITE_FORBIDDEN", "You can only delete your own sites")
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(id)
	}
	s.log.Info("site deleted", "site_id", id, "actor_id", actor.UserID)
	return nil
}
