package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

// Config holds token signing parameters.
type Config struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

// Credentials bundles a session with its bearer token.
type Credentials struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
	Token   string          `json:"token"`
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (uc *UseCase) Register(ctx context.Context, email, password, displayName string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid email", nil)
	}
	if len(password) < 6 {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "password too short", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	return uc.issue(ctx, user)
}

func (uc *UseCase) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.issue(ctx, user)
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*Credentials, error) {
	if ttl <= 0 {
		ttl = uc.cfg.SessionTTL
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)

	token, err := uc.signToken(session.UserID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &Credentials{Session: session, Token: token}, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Credentials, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(user.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &Credentials{User: &sanitized, Session: session, Token: token}, nil
}

func (uc *UseCase) signToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     uc.cfg.Issuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.Secret))
}
