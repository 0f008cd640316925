package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Zeeshan2604/hotwheels-api/config"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// Claims is the session token payload. UserID and IsAdmin are the only
// identity facts the rest of the system trusts.
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// RevocationChecker is consulted on every verification. The default
// implementation never revokes: tokens are trusted for their full lifetime
// and there is no server-side logout. Swap in a real blacklist here if that
// ever changes.
type RevocationChecker interface {
	IsRevoked(tokenID string) bool
}

type neverRevoked struct{}

func (neverRevoked) IsRevoked(string) bool { return false }

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationChecker
}

func NewTokens(cfg config.JWTConfig) *Tokens {
	return &Tokens{
		secret:  []byte(cfg.Secret),
		ttl:     cfg.TTL,
		revoked: neverRevoked{},
	}
}

// WithRevocationChecker replaces the default always-valid policy.
func (t *Tokens) WithRevocationChecker(rc RevocationChecker) *Tokens {
	t.revoked = rc
	return t
}

// Issue signs a token for the given user, valid for the configured TTL.
func (t *Tokens) Issue(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a raw token string and returns its claims.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if t.revoked.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
