package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// SessionIDKey is the context key for the visitor's view session id
	SessionIDKey ContextKey = "view_session_id"

	// SessionCookie is the cookie carrying the view session id
	SessionCookie = "f1tv_session"
)

// ViewSession attaches a view session to every request, creating one and setting
// the cookie when the visitor has none or an unknown one.
func ViewSession(store *view.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = newSession(c, store)
		} else if _, ok := store.Get(id); !ok {
			id = newSession(c, store)
		}

		c.Set(string(SessionIDKey), id)
		c.Next()
	}
}

func newSession(c *gin.Context, store *view.Store) string {
	sess := store.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
	return sess.ID
}

// GetSessionID retrieves the view session id from the context
func GetSessionID(c *gin.Context) (string, error) {
	v, exists := c.Get(string(SessionIDKey))
	if !exists {
		return "", errors.New("no view session")
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.New("invalid view session id")
	}

	return id, nil
}

// MustGetSessionID retrieves the session id from context, panics if not found.
// Use this only in handlers behind ViewSession.
func MustGetSessionID(c *gin.Context) string {
	id, err := GetSessionID(c)
	if err != nil {
		panic("view session not found in context - ensure ViewSession() middleware is applied")
	}
	return id
}
