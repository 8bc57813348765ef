package handler

import (
	"net/http"
	"strings"
	"time"

	"forms-server/internal/apierrors"
	"forms-server/internal/auth/processor"
	"forms-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenCookie is the cookie that carries the session token for browser clients
const TokenCookie = "token"

// CookieConfig controls the session cookie written on sign-in
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type Handler struct {
	authProcessor processor.AuthProcessor
	cookie        CookieConfig
	logger        *observability.Logger
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

func New(authProcessor processor.AuthProcessor, cookie CookieConfig, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, cookie: cookie, logger: logger}
}

func (h *Handler) HandleRegister(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.authProcessor.Register(ctx, processor.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, result.Token)
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.authProcessor.Login(ctx, req.Email, req.Password)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, result.Token)
	c.JSON(http.StatusOK, result)
}

// HandleGoogleLogin exchanges the authorization code obtained by the web app
func (h *Handler) HandleGoogleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.authProcessor.SignInWithGoogle(ctx, req.Code)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, result.Token)
	c.JSON(http.StatusOK, result)
}

// HandleLogout clears the session cookie. Tokens are stateless, so bearer
// clients simply drop theirs.
func (h *Handler) HandleLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) HandleGetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	userIDStr, exists := c.Get("User-ID")
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid user ID in token"))
		return
	}

	user, err := h.authProcessor.GetProfile(ctx, userID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// HandleJWTMiddleware rejects requests without a valid token and sets
// User-ID for the handlers behind it
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	tokenString, ok := readToken(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authorization token is missing or invalid"))
		return
	}

	claims, err := h.authProcessor.ValidateJWTToken(ctx, tokenString)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Set("User-ID", claims.Subject)
	c.Next()
}

// HandleOptionalAuth sets User-ID when a valid token is present and lets
// anonymous requests through. An invalid token is treated as anonymous.
func (h *Handler) HandleOptionalAuth(c *gin.Context) {
	ctx := c.Request.Context()

	if tokenString, ok := readToken(c); ok {
		claims, err := h.authProcessor.ValidateJWTToken(ctx, tokenString)
		if err == nil {
			c.Set("User-ID", claims.Subject)
		} else {
			h.logger.InfoWithError(ctx, "ignoring invalid token on anonymous route", err)
		}
	}

	c.Next()
}

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// readToken takes the bearer token from the Authorization header, falling
// back to the session cookie
func readToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		return token, token != ""
	}

	token, err := c.Cookie(TokenCookie)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
