package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	authdomain "healthdiary-backend/internal/auth/domain"
	authdto "healthdiary-backend/internal/auth/dto"
	"healthdiary-backend/internal/auth/repository"
	"healthdiary-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrInvalidMagicLink = errors.New("invalid or expired sign-in link")

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	mailer   MagicLinkSender
	config   *config.Config
	log      zerolog.Logger
}

func NewAuthUsecase(userRepo repository.UserRepository, mailer MagicLinkSender, cfg *config.Config, log zerolog.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		config:   cfg,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

func (u *authUsecase) RequestMagicLink(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	id := uuid.New().String()
	secret := uuid.New().String()

	hash, err := repository.HashSecret(secret)
	if err != nil {
		return err
	}

	loginToken := &authdomain.LoginToken{
		ID:         id,
		Email:      email,
		SecretHash: hash,
		ExpiresAt:  time.Now().Add(u.config.MagicLinkExpiry),
		CreatedAt:  time.Now(),
	}
	if err := u.userRepo.SaveLoginToken(loginToken); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/auth/verify?token=%s.%s", u.config.BaseURL, id, secret)
	if err := u.mailer.SendMagicLink(email, link); err != nil {
		u.log.Error().Err(err).Str("email", email).Msg("failed to send magic link")
		return err
	}

	return nil
}

func (u *authUsecase) VerifyMagicLink(token string) (*authdto.TokenResponse, error) {
	id, secret, found := strings.Cut(token, ".")
	if !found || id == "" || secret == "" {
		return nil, ErrInvalidMagicLink
	}

	loginToken, err := u.userRepo.FindLoginToken(id)
	if err != nil {
		return nil, err
	}
	if loginToken == nil || loginToken.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidMagicLink
	}
	if !repository.CheckSecretHash(secret, loginToken.SecretHash) {
		return nil, ErrInvalidMagicLink
	}

	// One-time use: consume before issuing a session.
	if err := u.userRepo.DeleteLoginToken(id); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(loginToken.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &authdomain.User{
			Email: loginToken.Email,
			Name:  nameFromEmail(loginToken.Email),
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("refresh token expired")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
