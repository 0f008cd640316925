package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity is the verified subject the access gate attached to the request.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// CallerIdentity returns the identity set by the gate, if any.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return Identity{}, false
	}
	isAdmin, _ := c.Get(ctxIsAdmin)
	admin, _ := isAdmin.(bool)
	id, _ := userID.(string)
	return Identity{UserID: id, IsAdmin: admin}, id != ""
}

// OwnerOrAdmin is the single ownership guard used by every mutating handler:
// the caller must be the resource owner or carry the admin claim. It writes
// the error response itself and reports whether the handler may proceed.
func OwnerOrAdmin(c *gin.Context, ownerID string) bool {
	ident, ok := CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	if ident.IsAdmin || ident.UserID == ownerID {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	return false
}

// RequireAdmin guards the /admin route group.
func RequireAdmin(c *gin.Context) {
	ident, ok := CallerIdentity(c)
	if !ok || !ident.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	c.Next()
}
