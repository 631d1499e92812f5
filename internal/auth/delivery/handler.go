package delivery

import (
	"errors"
	"net/http"

	authdomain "healthdiary-backend/internal/auth/domain"
	authdto "healthdiary-backend/internal/auth/dto"
	"healthdiary-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	frontendURL string
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		frontendURL: frontendURL,
	}
}

func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req authdto.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.RequestMagicLink(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send sign-in link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "check your email for a sign-in link"})
}

// Verify lands the user from the emailed link, so it answers with redirects,
// not JSON: the session pair travels to the frontend in the URL fragment.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/login?error=invalid_link")
		return
	}

	tokens, err := h.authUsecase.VerifyMagicLink(token)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidMagicLink) {
			c.Redirect(http.StatusFound, h.frontendURL+"/login?error=invalid_link")
			return
		}
		c.Redirect(http.StatusFound, h.frontendURL+"/login?error=server_error")
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/login#access_token="+tokens.AccessToken+"&refresh_token="+tokens.RefreshToken)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, user.(*authdomain.User))
}
