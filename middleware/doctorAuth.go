package middleware

import (
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthDoctorMiddleware admits doctor tokens and sets doctorID.
func JWTAuthDoctorMiddleware() gin.HandlerFunc {
	return requireRole(utils.RoleDoctor, DoctorIDKey)
}
