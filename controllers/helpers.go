package controllers

import (
	"geocheckin/errors"

	"github.com/gin-gonic/gin"
)

// currentUser reads the identity AuthMiddleware stored on the context.
func currentUser(c *gin.Context) (uint, string, error) {
	userID := c.GetUint("userID")
	if userID == 0 {
		return 0, "", errors.NewAppError(errors.ErrCodeUnauthorized, "Unauthorized", errors.ErrUnauthorized)
	}
	return userID, c.GetString("userEmail"), nil
}
