package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/geosites/internal/apperr"
	"github.com/Spok95/geosites/internal/domain/users"
)

type UserService interface {
	Create(ctx context.Context, in users.CreateInput) (*users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type Session struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        *users.User `json:"user"`
}

type Service struct {
	users  UserService
	hasher Bcrypt
	tokens *Tokens
	log    *slog.Logger
}

func NewService(us UserService, hasher Bcrypt, tokens *Tokens, log *slog.Logger) *Service {
	return &Service{users: us, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a USER account; the role cannot be chosen here.
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.Create(ctx, users.CreateInput{Email: email, Password: password, Role: users.RoleUser})
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || s.hasher.Compare(u.PasswordHash, password) != nil {
		s.log.Debug("login rejected", "email", email)
		return nil, apperr.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	}
	return s.session(u)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*users.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *Service) session(u *users.User) (*Session, error) {
	tok, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, ExpiresAt: exp, User: u}, nil
}
