package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
)

const userKey = "user"

func requestLogger() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if u, ok := currentUser(c); ok {
			keyvals = append(keyvals, "user_id", u.ID)
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", keyvals...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", keyvals...)
		default:
			log.Debug("request", keyvals...)
		}
	}
}

// sessionToken reads a bearer token, falling back to the session cookie
func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// identify attaches the session user when a valid token is present.
// Requests without one continue anonymously.
func (s *Server) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := s.auth.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Ignoring invalid session", "path", c.Request.URL.Path, "error", err)
			c.Next()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func requireAPIUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"code":  "UNAUTHORIZED",
			})
			return
		}
		c.Next()
	}
}

func requirePageUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// userID returns the session user id, or "" when anonymous
func userID(c *gin.Context) string {
	u, _ := currentUser(c)
	return u.ID
}
