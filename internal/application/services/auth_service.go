// Package services contains the application services orchestrating domain
// logic, repositories and infrastructure.
package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/security"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

// Roles issued in session tokens. Editors can mutate the catalog; admins can
// additionally trigger maintenance operations.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService validates operator passwords against the configured bcrypt
// hashes and issues session tokens.
type AuthService struct {
	logger *logging.ChanneledLogger
}

func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login checks the password against the admin hash first, then the editor
// hash, and returns a signed token carrying the matched role.
func (s *AuthService) Login(password string) (token, role string, err error) {
	role = s.matchRole(password)
	if role == "" {
		s.logger.LogAuthOperation("login", false)
		return "", "", ErrInvalidCredentials
	}

	token, err = security.GenerateAdminToken(role, config.JWTSecret)
	if err != nil {
		s.logger.Auth().Error("Token generation failed", "error", err.Error())
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.LogAuthOperation("login", true)
	return token, role, nil
}

// ValidateToken checks a bearer token and returns the embedded role.
func (s *AuthService) ValidateToken(token string) (string, error) {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to validate token: %w", err)
	}
	role := security.RoleFromClaims(claims)
	if role != RoleAdmin && role != RoleEditor {
		return "", errors.New("unknown role in token")
	}
	return role, nil
}

func (s *AuthService) matchRole(password string) string {
	if config.AdminPasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)) == nil {
		return RoleAdmin
	}
	if config.EditorPasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(config.EditorPasswordHash), []byte(password)) == nil {
		return RoleEditor
	}
	return ""
}
