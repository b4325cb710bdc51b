// Package security provides JWT token and secure random utilities.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AdminTokenTTL bounds how long an issued admin session stays valid.
const AdminTokenTTL = 24 * time.Hour

// GenerateAdminToken creates a signed token for an authenticated administrator.
func GenerateAdminToken(role, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(AdminTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateJWT validates a JWT token and returns its claims.
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// RoleFromClaims extracts the role claim, empty when absent.
func RoleFromClaims(claims jwt.MapClaims) string {
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}
