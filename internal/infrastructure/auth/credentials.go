package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/atelier/storefront/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoAdminPassword is returned when neither a password nor a hash is configured
var ErrNoAdminPassword = errors.New("admin password is not configured")

// AdminCredentials verifies the single back-office account
type AdminCredentials struct {
	username string
	hash     []byte
}

// NewAdminCredentials builds the credential from config. A plaintext password
// is hashed once here so only the bcrypt hash stays in memory.
func NewAdminCredentials(cfg config.AdminConfig) (*AdminCredentials, error) {
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &AdminCredentials{username: cfg.Username, hash: []byte(cfg.PasswordHash)}, nil
	}
	if cfg.Password == "" {
		return nil, ErrNoAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminCredentials{username: cfg.Username, hash: hash}, nil
}

// Verify reports whether username and password match the configured account
func (c *AdminCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}
