package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"assetdesk/internal/shared/authorization"
)

// Claims carries the identity snapshot embedded in every access token.
// Field names stay short because the token travels on every request.
type Claims struct {
	UID   uint                     `json:"uid"`
	Name  string                   `json:"name"`
	Dep   string                   `json:"dep"`
	Rol   authorization.Permission `json:"rol"`
	Pho   string                   `json:"pho"`
	Email string                   `json:"email"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret        []byte
	expireHours   int
	refreshWindow time.Duration
	now           func() time.Time
}

func NewJWTService(secret string, expireHours, refreshWindowMinutes int) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		expireHours:   expireHours,
		refreshWindow: time.Duration(refreshWindowMinutes) * time.Minute,
		now:           time.Now,
	}
}

// SetClock overrides the time source for tests.
func (s *JWTService) SetClock(now func() time.Time) {
	s.now = now
}

// Generate signs a fresh token for the given identity.
func (s *JWTService) Generate(uid uint, name, dep string, rol authorization.Permission, pho, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		UID:   uid,
		Name:  name,
		Dep:   dep,
		Rol:   rol,
		Pho:   pho,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			// The id keeps concurrent logins distinguishable even when
			// issued within the same second.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, rejecting anything not
// signed with HMAC under our secret.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ShouldRefresh reports whether the token expires within the refresh window
// and should be replaced before the handler runs.
func (s *JWTService) ShouldRefresh(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return s.now().Add(s.refreshWindow).After(claims.ExpiresAt.Time)
}

// Regenerate issues a new token carrying the same identity as claims,
// with a fresh issue and expiry time.
func (s *JWTService) Regenerate(claims *Claims) (string, error) {
	return s.Generate(claims.UID, claims.Name, claims.Dep, claims.Rol, claims.Pho, claims.Email)
}

// Identity verifies tokenString and returns the name and department it
// was minted for.
func (s *JWTService) Identity(tokenString string) (string, string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.Name, claims.Dep, nil
}
