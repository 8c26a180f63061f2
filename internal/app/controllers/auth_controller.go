// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/app/services"
	"github.com/ecetin/edushare/internal/middleware"
	"github.com/ecetin/edushare/internal/pkg/auth"
)

// AuthController handles registration, login, logout and token refresh
type AuthController struct {
	authService services.AuthService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// RegisterForm describes the registration form for clients that fetch it
func (c *AuthController) RegisterForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"fields": []string{"username", "email", "password", "role"},
			"roles":  []string{"student", "teacher"},
		},
	})
}

// Register creates a new unapproved account
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration request").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// LoginForm describes the login form for clients that fetch it
func (c *AuthController) LoginForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{"fields": []string{"email", "password"}},
	})
}

// Login authenticates a user and establishes the session. The access token is
// returned in the body and mirrored into a cookie for browser flows.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login request").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, tokens.AccessToken, tokens.ExpiresIn)

	c.logger.Info().Int64("userID", tokens.User.ID).Str("role", string(tokens.Role)).Msg("Login successful")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// Logout clears the session: refresh tokens are revoked and the cookie dropped
func (c *AuthController) Logout(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), actor.ID); err != nil {
		c.logger.Error().Err(err).Int64("userID", actor.ID).Msg("Logout failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "You have been logged out."}})
}

// RefreshToken rotates a refresh token into a new token pair
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid refresh request").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, tokens.AccessToken, tokens.ExpiresIn)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", "", false, true)
}
