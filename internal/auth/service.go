// Package auth implements the board's single-admin authentication: one
// static credential pair checked at login, and signed time-limited bearer
// tokens presented on every admin call. There is no refresh, revocation,
// or multi-user support; the single-admin model is a deliberate constraint.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/openmenuboard/menuboard/internal/models"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Config holds the admin credentials and token settings. PasswordHash is a
// bcrypt hash and takes precedence over the plaintext Password when set.
type Config struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
}

// Identity is the decoded token subject.
type Identity struct {
	Username string `json:"username"`
}

// Service issues and verifies admin bearer tokens.
type Service struct {
	cfg     Config
	limiter *rate.Limiter
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, letting tests control expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an auth service. When no signing secret is configured
// a random one is generated, which invalidates outstanding tokens on every
// restart.
func NewService(cfg Config, opts ...Option) *Service {
	if len(cfg.Secret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("auth: cannot read random secret: " + err.Error())
		}
		cfg.Secret = secret
		slog.Warn("auth: no signing secret configured, generated a random one; tokens will not survive a restart")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	s := &Service{
		cfg: cfg,
		// A small steady trickle of login attempts with a burst of five
		// keeps credential guessing slow without bothering a human admin.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and returns a signed bearer token plus its
// expiry time. Comparison is constant-time; failures never say which part
// was wrong.
func (s *Service) Login(username, password string) (string, time.Time, *models.AppError) {
	if !s.limiter.Allow() {
		return "", time.Time{}, models.ErrTooMany
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	var passOK bool
	if s.cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	}
	if !userOK || !passOK {
		return "", time.Time{}, &models.AppError{
			Code: "UNAUTHORIZED", Message: "invalid username or password", Status: 401,
		}
	}

	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		slog.Error("auth: failed to sign token", "err", err)
		return "", time.Time{}, models.ErrInternal("failed to issue token")
	}
	return token, expires, nil
}

// Verify parses and validates a bearer token, failing closed on malformed,
// expired, or badly signed input.
func (s *Service) Verify(token string) (Identity, *models.AppError) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return s.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, models.ErrForbidden
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return Identity{}, models.ErrForbidden
	}
	return Identity{Username: claims.Subject}, nil
}
