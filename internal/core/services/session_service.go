package services

import (
	"context"
	"log/slog"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/jwt"

	"github.com/pkg/errors"
)

// SessionService holds the signed-in account slot. A session lives in the
// repository; the JWT handed to the client only names it.
type SessionService struct {
	sessions repositories.SessionRepository
	ids      idgen.Generator
	secret   string
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions repositories.SessionRepository,
	ids idgen.Generator,
	secret string,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		ids:      ids,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// SignIn opens a session for account and returns its token
func (s *SessionService) SignIn(ctx context.Context, account *domain.Account) (string, *domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:        s.ids.NewID(),
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := jwt.GenerateSessionToken(
		session.ID,
		session.AccountID,
		session.Username,
		string(session.Role),
		s.secret,
		session.ExpiresAt,
	)
	if err != nil {
		return "", nil, systemError(s.logger, "sign session token", err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return "", nil, systemError(s.logger, "save session", err)
	}

	s.logger.Info("signed in", "account_id", account.ID, "role", account.Role.Label())
	return token, session, nil
}

// Resolve returns the live session a token names
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := jwt.ValidateSessionToken(token, s.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, systemError(s.logger, "get session", err)
	}

	if session.IsExpired(s.now()) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.logger.Warn("delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// SignOut clears the session a token names
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return systemError(s.logger, "delete session", err)
	}
	s.logger.Info("signed out", "account_id", session.AccountID)
	return nil
}

// PurgeExpired removes sessions past their expiry
func (s *SessionService) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		return 0, errors.Wrap(err, "purge expired sessions")
	}
	return n, nil
}
