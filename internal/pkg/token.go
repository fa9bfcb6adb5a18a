package pkg

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/simp-lee/jwt"
)

const tokenIssuer = "portal"

// TokenService issues and verifies signed bearer tokens identifying a user.
// JWT exposes the underlying service for the auth middleware.
type TokenService interface {
	Issue(userID uint) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID uint, err error)
	JWT() jwt.Service
	Close()
}

type jwtTokenService struct {
	svc    jwt.Service
	expiry time.Duration
}

// NewTokenService returns an HS256 TokenService backed by simp-lee/jwt.
// secret must be at least 32 characters and expiry must be positive.
func NewTokenService(secret string, expiry time.Duration) (TokenService, error) {
	return newTokenService(secret, expiry)
}

func newTokenService(secret string, expiry time.Duration, opts ...jwt.Option) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("invalid token expiry %s", expiry)
	}

	revocationTTL := jwt.DefaultUserRevocationTTL
	if expiry > revocationTTL {
		revocationTTL = expiry
	}
	opts = append([]jwt.Option{
		jwt.WithIssuer(tokenIssuer),
		jwt.WithMaxTokenLifetime(expiry),
		jwt.WithUserRevocationTTL(revocationTTL),
	}, opts...)

	svc, err := jwt.New(secret, opts...)
	if err != nil {
		return nil, fmt.Errorf("create jwt service: %w", err)
	}
	return &jwtTokenService{svc: svc, expiry: expiry}, nil
}

func (s *jwtTokenService) Issue(userID uint) (string, time.Time, error) {
	if userID == 0 {
		return "", time.Time{}, errors.New("user id is zero")
	}
	token, err := s.svc.GenerateToken(FormatUserID(userID), nil, s.expiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	parsed, err := s.svc.ParseToken(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read issued token: %w", err)
	}
	return token, parsed.ExpiresAt, nil
}

func (s *jwtTokenService) Parse(token string) (uint, error) {
	parsed, err := s.svc.ValidateToken(token)
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	return ParseUserID(parsed.UserID)
}

func (s *jwtTokenService) JWT() jwt.Service { return s.svc }

func (s *jwtTokenService) Close() { s.svc.Close() }

// FormatUserID renders a user ID as it is stored in token claims.
func FormatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseUserID reads a user ID from token claims. Zero is rejected.
func ParseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid token subject %q", raw)
	}
	return uint(id), nil
}
