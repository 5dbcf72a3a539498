package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/handlers"
)

// UserLoaderMiddleware verifies the session cookie on every request and, when
// valid, stores the claims in the context. An invalid or expired token is
// treated as a guest; there is no server-side session to clean up.
func UserLoaderMiddleware(issuer *auth.TokenIssuer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(handlers.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			log.Debug("Rejected session token", zap.Error(err), zap.String("client_ip", c.ClientIP()))
			c.Next()
			return
		}

		c.Set(handlers.UserContextKey, claims)
		c.Next()
	}
}

// AuthRequired checks that valid claims were loaded into the context. Browser
// routes redirect to the login page; API routes answer 401 JSON.
func AuthRequired(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.UserContextKey); !exists {
			if api {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "No autenticado"})
			} else {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
			}
			return
		}
		c.Next()
	}
}
