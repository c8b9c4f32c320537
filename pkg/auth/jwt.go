package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims represents the JWT claims carried by the account subsystem's tokens.
// The subject is the username; the engine never sees passwords or emails.
type Claims struct {
	Username string   `json:"sub"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig holds JWT validation configuration
type JWTConfig struct {
	SigningMethod string   // RS256 or HS256
	PublicKey     string   // For RS256
	SecretKey     string   // For HS256
	Issuer        string   // Expected issuer
	Audience      []string // Expected audience
}

// JWTValidator handles JWT validation
type JWTValidator struct {
	publicKey     *rsa.PublicKey
	secretKey     []byte
	signingMethod jwt.SigningMethod
	issuer        string
	audience      []string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	validator := &JWTValidator{
		issuer:   config.Issuer,
		audience: config.Audience,
	}

	switch config.SigningMethod {
	case "RS256":
		validator.signingMethod = jwt.SigningMethodRS256
		if config.PublicKey == "" {
			return nil, errors.New("public key required for RS256")
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(config.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		validator.publicKey = key
	case "HS256":
		validator.signingMethod = jwt.SigningMethodHS256
		if config.SecretKey == "" {
			return nil, errors.New("secret key required for HS256")
		}
		validator.secretKey = []byte(config.SecretKey)
	default:
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}

	return validator, nil
}

// ValidateToken validates a JWT token and returns the claims
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != v.signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}

		switch v.signingMethod {
		case jwt.SigningMethodRS256:
			return v.publicKey, nil
		case jwt.SigningMethodHS256:
			return v.secretKey, nil
		default:
			return nil, errors.New("unknown signing method")
		}
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidClaims)
	}

	if len(v.audience) > 0 {
		validAudience := false
		for _, aud := range v.audience {
			if claims.Audience != nil && contains(claims.Audience, aud) {
				validAudience = true
				break
			}
		}
		if !validAudience {
			return nil, fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
		}
	}

	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidClaims)
	}

	return claims, nil
}

// JWTGeneratorConfig holds JWT generator configuration
type JWTGeneratorConfig struct {
	SecretKey  string
	Issuer     string
	Audience   []string
	ExpiryTime time.Duration
}

// JWTGenerator mints HS256 tokens; used by tests and local tooling only,
// production tokens come from the account subsystem.
type JWTGenerator struct {
	secretKey  []byte
	issuer     string
	audience   []string
	expiryTime time.Duration
}

// NewJWTGenerator creates a new JWT generator
func NewJWTGenerator(config JWTGeneratorConfig) (*JWTGenerator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key required")
	}
	return &JWTGenerator{
		secretKey:  []byte(config.SecretKey),
		issuer:     config.Issuer,
		audience:   config.Audience,
		expiryTime: config.ExpiryTime,
	}, nil
}

// GenerateToken generates a new JWT token for a username
func (g *JWTGenerator) GenerateToken(username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   username,
			Audience:  g.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiryTime)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secretKey)
}

// UserContext represents the authenticated caller
type UserContext struct {
	Username string
	Roles    []string
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds the authenticated user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
