package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

// AuthOptions tunes token lifetimes and the reset link.
type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	ResetTTL  time.Duration
	// ResetURL is the page that receives the reset token as ?token=.
	ResetURL string
}

// sessionClaims is the JWT payload. The jti doubles as the session id used
// for sign-out revocation.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService implements the identity/session use cases.
type AuthService struct {
	repo     ports.AuthRepository
	sessions ports.SessionStore
	resets   ports.ResetTokenStore
	mailer   ports.Mailer
	opts     AuthOptions
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	repo ports.AuthRepository,
	sessions ports.SessionStore,
	resets ports.ResetTokenStore,
	mailer ports.Mailer,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		resets:   resets,
		mailer:   mailer,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return s.createUser(ctx, email, password, false)
}

func (s *AuthService) createUser(ctx context.Context, email, password string, isAdmin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// SignIn checks the credentials and issues a session token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("user signed in")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}

// Authenticate verifies token, rejects revoked sessions and loads the
// current administrator attribute from the user record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		SessionID: claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// SignOut revokes the caller's session until its token would have expired.
func (s *AuthService) SignOut(ctx context.Context, identity domain.Identity) error {
	until := identity.ExpiresAt
	if until.IsZero() {
		until = s.now().Add(s.opts.TokenTTL)
	}
	if err := s.sessions.Revoke(ctx, identity.SessionID, until); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.logger.Info().Str("user_id", identity.UserID).Msg("user signed out")
	return nil
}

func (s *AuthService) Session(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, identity.UserID)
}

// RequestPasswordReset mails a single-use reset link. Unknown addresses and
// mail delivery failures both succeed silently so callers cannot tell which
// emails belong to an account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("email", email).Msg("password reset for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.ID, s.opts.ResetTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(token)); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("send reset email")
		return nil
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

func (s *AuthService) resetLink(token string) string {
	u, err := url.Parse(s.opts.ResetURL)
	if err != nil || s.opts.ResetURL == "" {
		return "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// ResetPassword consumes token and sets a new password for its user.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

// EnsureAdmin makes sure an administrator account exists for email. It is
// called once at startup and is safe to repeat.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return s.createUser(ctx, email, strings.TrimSpace(password), true)
	case err != nil:
		return nil, err
	}

	if !user.IsAdmin {
		if err := s.repo.SetAdmin(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("promote admin: %w", err)
		}
		user.IsAdmin = true
	}
	return user, nil
}
