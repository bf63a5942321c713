package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/lvapl/StayFinder/internal/domain"
)

// AuthService owns login, logout, registration and profile updates. Sessions
// are keyed by a generated opaque token, so concurrent clients each hold
// their own.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionStore
}

func NewAuthService(users domain.UserRepository, sessions domain.SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login returns a fresh session token. Unknown email and wrong password are
// both ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil || u.Password != password {
		return "", domain.ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.sessions.Put(token, u.Email)
	return token, nil
}

// Logout always acks, even for an unknown or empty token.
func (s *AuthService) Logout(_ context.Context, token string) {
	s.sessions.Delete(token)
}

// Status resolves the presented token. The bool reports whether a session is
// active. The returned account still carries the password field; callers must
// not serialize it.
func (s *AuthService) Status(ctx context.Context, token string) (domain.UserAccount, bool) {
	email, ok := s.sessions.Resolve(token)
	if !ok {
		return domain.UserAccount{}, false
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.UserAccount{}, false
	}
	return u, true
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.UserAccount, error) {
	u := domain.UserAccount{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		FullName:  strings.TrimSpace(in.FirstName + " " + in.LastName),
		Phone:     in.Phone,
	}
	return s.users.Create(ctx, u)
}

// UpdateProfile merges the patch into the account behind the caller's own
// session; there is no way to address another account.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, p domain.UserPatch) error {
	email, ok := s.sessions.Resolve(token)
	if !ok {
		return domain.ErrNoSession
	}
	return s.users.Update(ctx, email, p)
}
