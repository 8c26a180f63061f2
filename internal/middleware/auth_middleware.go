package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/ecetin/edushare/internal/app/auth"
	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/pkg/auth"
)

// AccessTokenCookie is the cookie carrying the access token for browser flows
const AccessTokenCookie = "edushare_token"

const (
	ctxUserIDKey   = "userID"
	ctxUsernameKey = "username"
	ctxRoleKey     = "roleType"
)

// AuthMiddleware resolves the session context for a request
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// tokenFromRequest pulls the access token from the Authorization header or,
// for browser flows, the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		token, err := auth.ExtractBearerToken(authHeader)
		if err == nil {
			return token
		}
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}

	return ""
}

// JWTAuth requires a valid access token and binds the actor to the request
// context. Downstream handlers read the actor with ActorFromContext.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUsernameKey, claims.Username)
		c.Set(ctxRoleKey, claims.RoleType)

		c.Next()
	}
}

// OptionalJWT binds the actor if a valid token is present but never rejects
// the request. Used on the landing route, which redirects by session state.
func (m *AuthMiddleware) OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := m.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
				c.Set(ctxUserIDKey, claims.UserID)
				c.Set(ctxUsernameKey, claims.Username)
				c.Set(ctxRoleKey, claims.RoleType)
			}
		}
		c.Next()
	}
}

// RoleRequired rejects requests whose actor does not hold the given role.
// Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRoleKey)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// ActorFromContext reconstructs the actor bound by JWTAuth or OptionalJWT.
// The second return is false for anonymous requests.
func ActorFromContext(c *gin.Context) (appauth.Actor, bool) {
	userID, ok := c.Get(ctxUserIDKey)
	if !ok {
		return appauth.Actor{}, false
	}

	id, ok := userID.(int64)
	if !ok || id <= 0 {
		return appauth.Actor{}, false
	}

	username, _ := c.Get(ctxUsernameKey)
	role, _ := c.Get(ctxRoleKey)

	usernameStr, _ := username.(string)
	roleStr, _ := role.(string)

	return appauth.Actor{
		ID:            id,
		Username:      usernameStr,
		Role:          models.RoleType(roleStr),
		Authenticated: true,
	}, true
}
