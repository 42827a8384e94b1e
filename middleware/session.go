package middleware

import (
	"context"
	"errors"
	"net/http"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/models"
	"neighborhelp-backend/session"

	"github.com/gin-gonic/gin"
)

const accountKey = "account"

// Authenticator resolves a session token to a live session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// RequireSession gates a route group behind a valid session cookie. Requests
// without one are redirected to /login and the handler chain is aborted.
func RequireSession(auth Authenticator, cookieName string, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error(c.Request.Context(), "session lookup failed", "error", err)
			}
			redirectToLogin(c)
			return
		}

		c.Set(accountKey, sess.Account)
		c.Next()
	}
}

// CurrentAccount returns the account attached by RequireSession
func CurrentAccount(c *gin.Context) (models.AccountSnapshot, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return models.AccountSnapshot{}, false
	}
	account, ok := v.(models.AccountSnapshot)
	return account, ok
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
