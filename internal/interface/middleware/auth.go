package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

const (
	// HeaderToken carries "<scheme> <jwt>", as handed out by login.
	HeaderToken = "token"
	// CtxUserID is the gin context key holding the authenticated user id.
	CtxUserID = "userID"

	msgNotAuthorized = "not authorized"
	msgInternal      = "internal server error"
)

// TokenVerifier is satisfied by helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth rejects requests without a valid token and sets userID in the Gin
// context on success. Client-caused token failures are 401; anything else
// the verifier reports is a 500.
func Auth(verifier TokenVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Fields(c.GetHeader(HeaderToken))
		if len(parts) != 2 {
			response.Error(c, http.StatusUnauthorized, msgNotAuthorized, nil)
			return
		}

		userID, err := verifier.Verify(parts[1])
		if err != nil {
			if errors.Is(err, helpers.ErrInvalidToken) {
				response.Error(c, http.StatusUnauthorized, msgNotAuthorized, nil)
				return
			}
			helpers.LogError(logger, "token verification failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			})
			response.Error(c, http.StatusInternalServerError, msgInternal, nil)
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// UserID returns the identity set by Auth, or "" on unauthenticated routes.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
