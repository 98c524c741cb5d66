package middleware

import (
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped logger.
	loggerCtxKey = contextKey("logger")
	// personIDKey stores the authenticated person's ID.
	personIDKey = contextKey("personID")
)

// GetPersonIDFromContext retrieves the authenticated person ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetPersonIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(personIDKey); v != nil {
		personID, ok := v.(string)
		return personID, ok
	}
	return "", false
}
