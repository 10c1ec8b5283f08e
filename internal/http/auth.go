package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devmatch/internal/domain"
)

const (
	authCookieName = "token"
	ctxUserKey     = "authUser"
)

// tokenManager issues and verifies the HS256 session tokens behind the
// cookie/bearer session gate.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func newTokenManager(secret string, ttl time.Duration) *tokenManager {
	return &tokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *tokenManager) issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *tokenManager) verify(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, errors.New("malformed session token")
	}
	return strconv.ParseInt(claims.Subject, 10, 64)
}

// requireAuth resolves the calling identity from the session token and aborts
// with 401 otherwise. Handlers behind it read the user via currentUser.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "please log in"})
			return
		}

		userID, err := h.tokens.verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(authCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(ctxUserKey).(*domain.User)
}

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, int(h.tokens.ttl.Seconds()), "/", "", false, true)
}

func (h *Handler) clearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
