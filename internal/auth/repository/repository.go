package repository

import (
	"time"

	authdomain "healthdiary-backend/internal/auth/domain"
)

// UserRepository persists users and their session/login tokens. Lookups
// return (nil, nil) when no row exists.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error

	SaveLoginToken(token *authdomain.LoginToken) error
	FindLoginToken(id string) (*authdomain.LoginToken, error)
	DeleteLoginToken(id string) error

	// DeleteExpiredTokens removes refresh and login tokens that expired
	// before the given instant.
	DeleteExpiredTokens(before time.Time) error
}
