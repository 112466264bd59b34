package users

import (
	"context"
	"log/slog"

	"github.com/Spok95/geosites/internal/apperr"
)

type Store interface {
	Create(ctx context.Context, email, passwordHash string, role Role) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, p Patch) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type CreateInput struct {
	Email    string
	Password string
	Role     Role
}

type UpdateInput struct {
	Email    *string
	Password *string
	Role     *Role
}

type Service struct {
	store  Store
	hasher PasswordHasher
	log    *slog.Logger
}

func NewService(store Store, hasher PasswordHasher, log *slog.Logger) *Service {
	return &Service{store: store, hasher: hasher, log: log}
}

func notFound(id int64) error {
	return apperr.NotFound("USER_NOT_FOUND", "User with ID %d not found", id)
}

func emailTaken(err error) error {
	return apperr.Conflict("EMAIL_EXISTS", "Email already exists").Wrap(err)
}

// Create stores a user; an empty role defaults to USER.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, apperr.Validation("INVALID_ROLE", "Unknown role %q", role)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Create(ctx, in.Email, hash, role)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, emailTaken(err)
		}
		return nil, err
	}
	s.log.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound(id)
	}
	return u, nil
}

// FindByEmail returns nil, nil when nobody uses the address.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmail(ctx, email)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*User, error) {
	p := Patch{Email: in.Email, Role: in.Role}
	if in.Role != nil && !in.Role.Valid() {
		return nil, apperr.Validation("INVALID_ROLE", "Unknown role %q", *in.Role)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		p.PasswordHash = &hash
	}
	u, err := s.store.Update(ctx, id, p)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, emailTaken(err)
		}
		return nil, err
	}
	if u == nil {
		return nil, notFound(id)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("USER_IN_USE", "User with ID %d still owns sites or submissions", id).Wrap(err)
		}
		return err
	}
	if !ok {
		return notFound(id)
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}
