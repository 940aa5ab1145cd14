package middleware

import (
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware admits patient tokens and sets userID.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return requireRole(utils.RolePatient, UserIDKey)
}
