package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/auth"
	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type AuthHandler struct {
	users        *repository.UserRepository
	jwtSecret    string
	googleConfig *oauth2.Config
	frontendURL  string
	log          *zap.SugaredLogger
}

func NewAuthHandler(users *repository.UserRepository, jwtSecret string, googleConfig *oauth2.Config, frontendURL string, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		jwtSecret:    jwtSecret,
		googleConfig: googleConfig,
		frontendURL:  frontendURL,
		log:          log,
	}
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         *model.User `json:"user"`
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a password account. The first registration path never
// grants admin; roles are promoted separately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a password of at least 8 characters are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.users.GetByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.log.Errorw("register lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &model.User{
		Email:          email,
		HashedPassword: hashed,
		Role:           model.RoleLearner,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.log.Errorw("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.issueTokens(c, user, http.StatusCreated)
}

// Login authenticates a password account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil || user.HashedPassword == "" || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.issueTokens(c, user, http.StatusOK)
}

// GoogleAuth redirects to the Google OAuth consent screen.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	state := generateState()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)

	url := h.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback exchanges the OAuth code, finds or creates the user and
// hands tokens back to the frontend via redirect.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	savedState, err := c.Cookie("oauth_state")
	if err != nil || state != savedState {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=invalid_state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=no_code")
		return
	}

	token, err := h.googleConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Errorw("oauth code exchange failed", "error", err)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=exchange_failed")
		return
	}

	userInfo, err := auth.GetGoogleUserInfo(c.Request.Context(), h.googleConfig, token)
	if err != nil {
		h.log.Errorw("failed to fetch google user info", "error", err)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=user_info_failed")
		return
	}

	user, err := h.users.GetByProvider(c.Request.Context(), "google", userInfo.ID)
	if errors.Is(err, repository.ErrNotFound) {
		user = &model.User{
			Provider:   "google",
			ProviderID: userInfo.ID,
			Email:      strings.ToLower(userInfo.Email),
			Name:       userInfo.Name,
			Role:       model.RoleLearner,
		}
		if err := h.users.Create(c.Request.Context(), user); err != nil {
			h.log.Errorw("failed to create google user", "error", err)
			c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=create_user_failed")
			return
		}
	} else if err != nil {
		h.log.Errorw("google user lookup failed", "error", err)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=db_error")
		return
	}

	accessToken, refreshToken, err := h.mintTokens(c, user)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?error=token_failed")
		return
	}

	redirectURL := h.frontendURL + "?access_token=" + accessToken + "&refresh_token=" + refreshToken
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	stored, err := h.users.GetActiveRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), stored.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	accessToken, err := auth.GenerateAccessToken(user, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"expires_in":   int(auth.AccessTokenExpiry.Seconds()),
	})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	if err := h.users.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		h.log.Warnw("failed to revoke refresh token", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) mintTokens(c *gin.Context, user *model.User) (string, string, error) {
	accessToken, err := auth.GenerateAccessToken(user, h.jwtSecret)
	if err != nil {
		h.log.Errorw("failed to generate access token", "error", err)
		return "", "", err
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Errorw("failed to generate refresh token", "error", err)
		return "", "", err
	}

	stored := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(auth.RefreshTokenExpiry),
	}
	if err := h.users.CreateRefreshToken(c.Request.Context(), stored); err != nil {
		h.log.Errorw("failed to store refresh token", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *model.User, status int) {
	accessToken, refreshToken, err := h.mintTokens(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}

	c.JSON(status, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(auth.AccessTokenExpiry.Seconds()),
		User:         user,
	})
}

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
