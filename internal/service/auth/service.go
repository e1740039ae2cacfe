package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danidevdc/calendar-citas-app/internal/config"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
	"github.com/danidevdc/calendar-citas-app/pkg/security"
)

// Service gates the single-operator session: one bcrypt-hashed password,
// a failed-attempt lockout window, and a JWT with an expiry for the
// session blob the client keeps.
type Service struct {
	cfg    config.AuthConfig
	hasher security.PasswordHasher

	mu          sync.Mutex
	attempts    []time.Time
	lockedUntil time.Time

	Now func() time.Time
}

func NewService(cfg config.AuthConfig, hasher security.PasswordHasher) *Service {
	return &Service{cfg: cfg, hasher: hasher, Now: time.Now}
}

// Login checks the operator password and returns a session token. Repeated
// failures inside the lockout window lock further tries out.
func (s *Service) Login(password string) (string, error) {
	now := s.Now()

	s.mu.Lock()
	if now.Before(s.lockedUntil) {
		s.mu.Unlock()
		return "", apperrors.Unauthorized("too many failed attempts, try again later")
	}
	s.mu.Unlock()

	if s.cfg.PasswordHash == "" {
		return "", apperrors.Unauthorized("operator password not configured")
	}

	if err := s.hasher.Compare(s.cfg.PasswordHash, password); err != nil {
		s.recordFailure(now)
		return "", apperrors.Unauthorized("invalid password")
	}

	s.mu.Lock()
	s.attempts = nil
	s.mu.Unlock()

	return s.issueToken(now)
}

// VerifyToken validates a session token and its expiry.
func (s *Service) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return apperrors.Unauthorized("invalid or expired session")
	}
	return nil
}

func (s *Service) issueToken(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": "operator",
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.SessionExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to sign token: %w", err))
	}
	return signed, nil
}

// recordFailure keeps only the attempts inside the lockout window; hitting
// the limit locks the door for the configured duration.
func (s *Service) recordFailure(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.cfg.LockoutDuration)
	kept := s.attempts[:0]
	for _, t := range s.attempts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	s.attempts = append(kept, now)

	if len(s.attempts) >= s.cfg.MaxAttempts {
		s.lockedUntil = now.Add(s.cfg.LockoutDuration)
		s.attempts = nil
	}
}
