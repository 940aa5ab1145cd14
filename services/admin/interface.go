package admin

import (
	"context"
	"time"
)

type AdminService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AdminCredentials is the single admin account, taken from configuration.
// PasswordHash (bcrypt) is preferred over Password when both are set.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Credentials AdminCredentials
	TokenTTL    time.Duration
}
