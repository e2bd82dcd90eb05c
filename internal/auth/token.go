package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

const refreshTokenType = "refresh"

// ErrInvalidToken is returned for every token verification failure. Malformed,
// badly signed and expired tokens are deliberately not distinguished.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates signed, self-contained tokens. There is no
// server-side storage and no revocation: a token is valid until it expires.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager from auth configuration. Only HS256 is
// supported; any other configured algorithm fails at startup.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.JWTAlgorithm != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	accessTTL := cfg.AccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL()
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Claims describes the JWT payload.
type Claims struct {
	Role      domain.Role `json:"role"`
	TokenType string      `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a short-lived token for the subject.
func (tm *TokenManager) GenerateAccessToken(subjectID string, role domain.Role) (string, time.Time, error) {
	return tm.generate(subjectID, role, tm.accessTTL, "")
}

// GenerateRefreshToken signs a long-lived token carrying the refresh marker.
func (tm *TokenManager) GenerateRefreshToken(subjectID string, role domain.Role) (string, time.Time, error) {
	return tm.generate(subjectID, role, tm.refreshTTL, refreshTokenType)
}

func (tm *TokenManager) generate(subjectID string, role domain.Role, ttl time.Duration, tokenType string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccessToken validates signature and expiry and returns the claims.
func (tm *TokenManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr)
}

// ParseRefreshToken validates like ParseAccessToken and additionally rejects
// tokens without the refresh marker, so an access token cannot be replayed
// here.
func (tm *TokenManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
