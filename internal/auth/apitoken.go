package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APITokenExpiry is how long dashboard API tokens are valid.
const APITokenExpiry = time.Hour

// Predefined API token errors.
var (
	ErrInvalidAPIToken = errors.New("invalid api token")
	ErrAPITokenExpired = errors.New("api token has expired")
)

// APITokenClaims are the claims in dashboard API access tokens.
type APITokenClaims struct {
	jwt.RegisteredClaims
}

// APITokenService signs and validates the bearer tokens that protect the
// dashboard API. HS256 with a shared server-side key; the Graph-side tokens
// in provider.go are unrelated to these.
type APITokenService struct {
	signingKey []byte
	issuer     string
	audience   string
}

// APITokenConfig holds configuration for the API token service.
type APITokenConfig struct {
	// SigningKey is the shared secret used to sign tokens.
	SigningKey string

	// Issuer is the issuer claim (default: "healthboard").
	Issuer string

	// Audience is the audience claim (default: "healthboard-api").
	Audience string
}

// NewAPITokenService creates a new API token service.
func NewAPITokenService(cfg APITokenConfig) *APITokenService {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "healthboard"
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "healthboard-api"
	}
	return &APITokenService{
		signingKey: []byte(cfg.SigningKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// IssueToken creates a signed token for the given subject.
func (s *APITokenService) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := APITokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(APITokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign api token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token and returns its subject.
func (s *APITokenService) ValidateToken(tokenString string) (string, error) {
	claims := &APITokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrAPITokenExpired
		}
		return "", ErrInvalidAPIToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidAPIToken
	}
	return claims.Subject, nil
}
