package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/lotes-map/internal/domain"
)

// SessionService signs and verifies session tokens carrying an Identity.
// Tokens do not expire; the cookie holding them lasts for the browser session.
type SessionService struct {
	secret []byte
	now    func() time.Time
}

// NewSessionService creates a SessionService using HMAC-SHA256 with secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret), now: time.Now}
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issue returns a signed token for the identity.
func (s *SessionService) Issue(id domain.Identity) (string, error) {
	claims := sessionClaims{
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.Email,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its identity.
func (s *SessionService) Parse(tokenString string) (*domain.Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Identity{Email: claims.Subject, Name: claims.Name}, nil
}
