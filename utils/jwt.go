package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var secretKey []byte

// SetJWTSecret installs the signing key. It must be called before tokens are issued.
func SetJWTSecret(secret string) {
	secretKey = []byte(secret)
}

// TokenClaims is the decoded view of a session token.
type TokenClaims struct {
	Subject string
	Role    string
	IsAdmin bool
}

// GenerateToken creates a signed JWT for subject acting as role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	if role == RoleAdmin {
		claims["isAdmin"] = true
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ParseToken validates tokenString and extracts its claims.
// Expired, malformed and foreign-signed tokens are rejected.
func ParseToken(tokenString string) (*TokenClaims, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("jwt secret not configured")
	}
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, ok := claims["exp"]; !ok {
		return nil, errors.New("token has no expiry")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return nil, errors.New("token does not contain a role")
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return &TokenClaims{Subject: sub, Role: role, IsAdmin: isAdmin}, nil
}
