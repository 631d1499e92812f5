package usecase

import (
	authdomain "healthdiary-backend/internal/auth/domain"
	authdto "healthdiary-backend/internal/auth/dto"
)

type AuthUsecase interface {
	// RequestMagicLink creates a one-time login token for the address and
	// emails the sign-in link. It succeeds regardless of whether the address
	// belongs to an existing account.
	RequestMagicLink(email string) error

	// VerifyMagicLink consumes a magic-link token ("id.secret"), creating the
	// user on first login, and issues a JWT session pair.
	VerifyMagicLink(token string) (*authdto.TokenResponse, error)

	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)
}

// MagicLinkSender delivers the sign-in link to the user's inbox.
type MagicLinkSender interface {
	SendMagicLink(to, link string) error
}
