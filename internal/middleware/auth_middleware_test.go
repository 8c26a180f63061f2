package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/pkg/auth"
)

func newTestMiddleware() (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "edushare.test",
	})
	return NewAuthMiddleware(jwtService), jwtService
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	user := &models.User{ID: 7, Username: "jdoe", RoleType: role}
	access, _, _, _, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	return access
}

func protectedRouter(m *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := append([]gin.HandlerFunc{m.JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": actor.ID, "role": string(actor.Role)})
	})
	router.GET("/protected", chain...)
	return router
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	m, _ := newTestMiddleware()
	router := protectedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthAcceptsBearerToken(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := protectedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, models.RoleTeacher))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestJWTAuthAcceptsSessionCookie(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := protectedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessTokenFor(t, jwtService, models.RoleStudent)})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	m, _ := newTestMiddleware()
	router := protectedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRoleRequired(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := protectedRouter(m, m.RoleRequired(models.RoleAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, models.RoleTeacher))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("teacher on admin route: status = %d, want %d", w.Code, http.StatusForbidden)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, models.RoleAdmin))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOptionalJWTNeverRejects(t *testing.T) {
	m, jwtService := newTestMiddleware()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", m.OptionalJWT(), func(c *gin.Context) {
		if _, ok := ActorFromContext(c); ok {
			c.String(http.StatusOK, "authenticated")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Body.String() != "anonymous" {
		t.Errorf("body = %q, want anonymous", w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, models.RoleStudent))
	router.ServeHTTP(w, req)
	if w.Body.String() != "authenticated" {
		t.Errorf("body = %q, want authenticated", w.Body.String())
	}

	// An invalid token degrades to anonymous rather than a rejection
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("invalid token: status = %d body = %q, want 200 anonymous", w.Code, w.Body.String())
	}
}
