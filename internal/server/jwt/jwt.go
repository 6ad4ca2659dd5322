package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for a token that fails signature, algorithm or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

const issuer = "credadmin"

// Claims represents JWT claims. Authorities are carried in the "auth" claim
// as a comma-separated list.
type Claims struct {
	Auth string `json:"auth"`
	jwt.RegisteredClaims
}

// Authorities returns the roles from the "auth" claim.
func (c *Claims) Authorities() []string {
	if c.Auth == "" {
		return nil
	}
	return strings.Split(c.Auth, ",")
}

// Service provides JWT token generation and validation
type Service struct {
	now           func() time.Time
	secret        []byte
	tokenTTL      time.Duration
	rememberMeTTL time.Duration
}

// NewService creates a new JWT service
// secret should be a cryptographically secure random string
func NewService(secret string, tokenTTL, rememberMeTTL time.Duration) *Service {
	return &Service{
		now:           time.Now,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		rememberMeTTL: rememberMeTTL,
	}
}

// GenerateToken creates a signed HS256 token for the login and returns it with its lifetime in seconds.
func (s *Service) GenerateToken(login string, authorities []string, rememberMe bool) (string, int64, error) {
	ttl := s.tokenTTL
	if rememberMe {
		ttl = s.rememberMeTTL
	}

	now := s.now()
	claims := Claims{
		Auth: strings.Join(authorities, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, int64(ttl.Seconds()), nil
}

// ValidateToken validates and parses a token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
