package middleware

import (
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware admits tokens carrying the admin marker and sets adminID.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return requireRole(utils.RoleAdmin, AdminIDKey)
}
