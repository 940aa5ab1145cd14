package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ok writes a success payload; fields are merged next to "success".
func ok(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail logs the error against the request and writes the failure payload.
func fail(c *gin.Context, err error) {
	if utils.HTTPStatus(err) >= http.StatusInternalServerError {
		getLogger(c).Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.RespondError(c, err)
}

// bindJSON decodes the request body, failing with a validation error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.RespondError(c, utils.NewValidationError("Invalid request body"))
		return false
	}
	return true
}

// subject returns the authenticated id the auth middleware stored under key.
func subject(c *gin.Context, key string) (string, bool) {
	id := c.GetString(key)
	if id == "" {
		utils.RespondError(c, utils.NewUnauthenticatedError("Not Authorized Login Again"))
		return "", false
	}
	return id, true
}

// coerceFloat accepts a JSON number or a numeric string.
func coerceFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// coerceBool accepts a JSON boolean, "true"/"false" strings, or 0/1.
func coerceBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	default:
		return false, fmt.Errorf("not a boolean: %v", v)
	}
}

// parseAddress reads an address given either as a JSON string or an object.
func parseAddress(v interface{}) (models.Address, error) {
	var addr models.Address
	switch t := v.(type) {
	case string:
		if err := json.Unmarshal([]byte(t), &addr); err != nil {
			return addr, fmt.Errorf("invalid address: %w", err)
		}
	case map[string]interface{}:
		addr.Line1, _ = t["line1"].(string)
		addr.Line2, _ = t["line2"].(string)
	default:
		return addr, fmt.Errorf("invalid address")
	}
	return addr, nil
}
