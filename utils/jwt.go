package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"chargesphere/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const fallbackSecret = "chargesphere-dev-secret"

// TokenClaims is what a valid session token carries.
type TokenClaims struct {
	Subject string
	Role    string
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(fallbackSecret)
}

// GenerateToken creates a signed JWT with the given subject (user id) and role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseToken validates the token and extracts subject and role.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{Subject: sub, Role: role}, nil
}
