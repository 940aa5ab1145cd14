package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustToken(t *testing.T, subject, role string, ttl time.Duration) string {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateToken(subject, role, ttl)
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	patient := mustToken(t, "P1", utils.RolePatient, time.Hour)
	doctor := mustToken(t, "D1", utils.RoleDoctor, time.Hour)
	admin := mustToken(t, "admin@clinic.test", utils.RoleAdmin, time.Hour)
	expired := mustToken(t, "P1", utils.RolePatient, -time.Minute)

	tests := []struct {
		name    string
		token   string
		role    string
		kind    utils.ErrorKind
		subject string
	}{
		{"patient ok", patient, utils.RolePatient, "", "P1"},
		{"doctor ok", doctor, utils.RoleDoctor, "", "D1"},
		{"admin ok", admin, utils.RoleAdmin, "", "admin@clinic.test"},
		{"missing token", "", utils.RolePatient, utils.KindUnauthenticated, ""},
		{"garbage token", "not.a.jwt", utils.RolePatient, utils.KindUnauthenticated, ""},
		{"expired token", expired, utils.RolePatient, utils.KindUnauthenticated, ""},
		{"patient on doctor route", patient, utils.RoleDoctor, utils.KindForbidden, ""},
		{"doctor on admin route", doctor, utils.RoleAdmin, utils.KindForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := Verify(tt.token, tt.role)
			if tt.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.subject, subject)
				return
			}
			assert.Equal(t, tt.kind, utils.KindOf(err))
		})
	}
}

func TestVerifyForeignSignature(t *testing.T) {
	token := mustToken(t, "P1", utils.RolePatient, time.Hour)
	utils.SetJWTSecret("rotated-secret")
	defer utils.SetJWTSecret("test-secret")

	_, err := Verify(token, utils.RolePatient)
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user", JWTAuthUserMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(UserIDKey)})
	})
	r.GET("/doctor", JWTAuthDoctorMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(DoctorIDKey)})
	})
	r.GET("/admin", JWTAuthAdminMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(AdminIDKey)})
	})
	return r
}

func TestAuthMiddlewares(t *testing.T) {
	r := newAuthRouter()
	patient := mustToken(t, "P1", utils.RolePatient, time.Hour)
	doctor := mustToken(t, "D1", utils.RoleDoctor, time.Hour)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"patient route with patient token", "/user", patient, http.StatusOK},
		{"patient route without token", "/user", "", http.StatusUnauthorized},
		{"doctor route with patient token", "/doctor", patient, http.StatusForbidden},
		{"doctor route with doctor token", "/doctor", doctor, http.StatusOK},
		{"admin route with doctor token", "/admin", doctor, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(utils.TokenHeader, tt.token)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthMiddlewareSetsSubject(t *testing.T) {
	r := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set(utils.TokenHeader, mustToken(t, "P42", utils.RolePatient, time.Hour))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "P42", body["id"])
}

func TestAuthFailurePayload(t *testing.T) {
	r := newAuthRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Not Authorized Login Again", body.Message)
}
