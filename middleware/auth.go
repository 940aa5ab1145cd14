package middleware

import (
	"strings"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	UserIDKey   = "userID"
	DoctorIDKey = "doctorID"
	AdminIDKey  = "adminID"
)

// Verify decodes the session token and checks it grants requiredRole. It
// returns the token subject. Missing, malformed and expired tokens are
// unauthenticated; a valid token for another role is forbidden.
func Verify(token, requiredRole string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", utils.NewUnauthenticatedError("Not Authorized Login Again")
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return "", utils.NewUnauthenticatedError("Not Authorized Login Again")
	}
	if claims.Role != requiredRole {
		return "", utils.NewForbiddenError("Not Authorized for this action")
	}
	if requiredRole == utils.RoleAdmin && !claims.IsAdmin {
		return "", utils.NewForbiddenError("Not Authorized for this action")
	}
	return claims.Subject, nil
}

// requireRole builds a middleware that verifies the token header and stores
// the subject under contextKey.
func requireRole(role, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := Verify(c.GetHeader(utils.TokenHeader), role)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.Set(contextKey, subject)
		c.Next()
	}
}
