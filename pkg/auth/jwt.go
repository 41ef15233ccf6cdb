package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the authenticated caller extracted from a bearer token
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

// JWTConfig holds the verification parameters for bearer tokens
type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  []string
}

// JWTVerifier validates HS256 bearer tokens. Token issuance belongs to the
// identity provider; this side only verifies.
type JWTVerifier struct {
	config JWTConfig
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(config JWTConfig) (*JWTVerifier, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	return &JWTVerifier{config: config}, nil
}

// tokenClaims is the wire shape of the token payload
type tokenClaims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a token string and returns its claims
func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.SecretKey), nil
	},
		jwt.WithIssuer(v.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	roles := claims.Roles
	if len(roles) == 0 {
		roles = []string{"authenticated"}
	}

	return &Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Roles:  roles,
	}, nil
}
