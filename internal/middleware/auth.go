package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const ViewerKey = "viewer_id"

// LoadViewer puts the session's user id into the request context. The API is
// parameter-driven, so this only serves as a fallback viewer identity for the
// personalized feed when no current_user_id is supplied.
func LoadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if raw, ok := session.Get("user_id").(string); ok {
			if id, err := bson.ObjectIDFromHex(raw); err == nil {
				c.Set(ViewerKey, id)
			}
		}
		c.Next()
	}
}

// SessionViewer returns the viewer id loaded by LoadViewer, if any.
func SessionViewer(c *gin.Context) (bson.ObjectID, bool) {
	v, ok := c.Get(ViewerKey)
	if !ok {
		return bson.NilObjectID, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}
