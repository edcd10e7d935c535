package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/session"
	"github.com/osa911/teamchat/internal/store"
	"github.com/osa911/teamchat/internal/utils"
)

// TokenVerifier turns a bearer token into the identity it was issued to
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*session.Identity, error)
}

// AuthMiddleware gates routes behind a verified session
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth verifies the bearer token and stores the identity on the request context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	utils.HandleError(c, http.StatusUnauthorized, common.ErrCodeUnauthorized, message, nil)
}

// DevVerifier accepts the token itself as the uid. Only for the in-memory store backend.
type DevVerifier struct{}

func (DevVerifier) Verify(_ context.Context, token string) (*session.Identity, error) {
	if !store.ValidKey(token) {
		return nil, fmt.Errorf("invalid development token")
	}
	return &session.Identity{
		UID:         token,
		Email:       token + "@localhost",
		DisplayName: token,
	}, nil
}
