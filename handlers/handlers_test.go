package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/database/repository"
	"medibook/handlers"
	"medibook/models"
	"medibook/routes"
	"medibook/services/admin"
	"medibook/services/appointment"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/services/payment"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImages struct{}

func (stubImages) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	return "https://img.test/" + folder + "/upload.png", nil
}

type stubGateway struct{}

func (stubGateway) Name() string { return "stub" }

func (stubGateway) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
	return &models.PaymentOrder{ID: "order_" + req.AppointmentID, Gateway: "stub", Amount: req.AmountMinor, Currency: req.Currency}, nil
}

func (stubGateway) Verify(ctx context.Context, orderRef, paymentRef, signature string) error {
	if signature != "signed:"+orderRef+"|"+paymentRef {
		return utils.ErrSignatureMismatch
	}
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	repos := repository.NewMemoryRepositories()
	cache := doctor.NoopDirectoryCache{}
	doctors := &doctor.DefaultDoctorService{Repo: repos.Doctors, Cache: cache, Images: stubImages{}, TokenTTL: time.Hour}
	appts := &appointment.DefaultAppointmentService{
		Doctors:      repos.Doctors,
		Patients:     repos.Patients,
		Appointments: repos.Appointments,
		Cache:        cache,
	}
	dash := &dashboard.DefaultDashboardService{Doctors: repos.Doctors, Patients: repos.Patients, Appointments: repos.Appointments}

	r := gin.New()
	r.Use(utils.ErrorHandler(), handlers.RequestLogger())
	routes.RegisterRoutes(r, &handlers.HandlerBundle{
		User: &handlers.UserHandler{
			UserService:        &user.DefaultUserService{Repo: repos.Patients, Images: stubImages{}, TokenTTL: time.Hour},
			AppointmentService: appts,
			PaymentService:     &payment.DefaultPaymentService{Appointments: repos.Appointments, Gateway: stubGateway{}, Currency: "INR"},
		},
		Doctor: &handlers.DoctorHandler{DoctorService: doctors, AppointmentService: appts, DashboardService: dash},
		Admin: &handlers.AdminHandler{
			AdminService: &admin.DefaultAdminService{
				Credentials: admin.AdminCredentials{Email: "admin@clinic.test", Password: "admin-pass"},
				TokenTTL:    time.Hour,
			},
			DoctorService:      doctors,
			AppointmentService: appts,
			DashboardService:   dash,
		},
	})
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(utils.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Header().Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

func addDoctor(t *testing.T, r *gin.Engine, adminToken, email string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":         "Dr. Grey",
		"email":        email,
		"password":     "surgeon123",
		"speciality":   "Neurologist",
		"degree":       "MBBS",
		"experience":   "4 Years",
		"about":        "Neurology.",
		"feeStructure": "60",
		"address":      `{"line1":"17th Cross","line2":"Richmond Circle"}`,
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "portrait.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-doctor", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(utils.TokenHeader, adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@clinic.test", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := body["token"].(string)

	addDoctor(t, r, adminToken, "grey@clinic.test")

	w, body = doJSON(t, r, http.MethodGet, "/api/doctor/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doctors := body["doctors"].([]interface{})
	require.Len(t, doctors, 1)
	doc := doctors[0].(map[string]interface{})
	docID := doc["id"].(string)
	assert.NotContains(t, doc, "email")

	w, body = doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Ann", "email": "ann@mail.test", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	patientToken := body["token"].(string)

	booking := gin.H{"docId": docID, "slotDate": "01_01_2025", "slotTime": "10:00 AM"}
	w, body = doJSON(t, r, http.MethodPost, "/api/user/book-appointment", patientToken, booking)
	require.Equal(t, http.StatusOK, w.Code)
	appt := body["appointment"].(map[string]interface{})
	apptID := appt["id"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/book-appointment", patientToken, booking)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "slot_taken", body["code"])

	w, body = doJSON(t, r, http.MethodGet, "/api/user/appointments", patientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["appointments"], 1)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/payment-razorpay", patientToken, gin.H{"appointmentId": apptID})
	require.Equal(t, http.StatusOK, w.Code)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, float64(6000), order["amount"])
	orderID := order["id"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/payment-verify", patientToken, gin.H{
		"appointmentId":       apptID,
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "forged",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "signature_mismatch", body["code"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/user/payment-verify", patientToken, gin.H{
		"appointmentId":       apptID,
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "signed:" + orderID + "|pay_1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/cancel-appointment", patientToken, gin.H{"appointmentId": apptID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Appointment cancelled. Payment recorded.", body["message"])

	w, body = doJSON(t, r, http.MethodPost, "/api/user/cancel-appointment", patientToken, gin.H{"appointmentId": apptID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_cancelled", body["code"])

	w, body = doJSON(t, r, http.MethodGet, "/api/doctor/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc = body["doctors"].([]interface{})[0].(map[string]interface{})
	assert.Empty(t, doc["slots_booked"])

	w, body = doJSON(t, r, http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := body["dashData"].(map[string]interface{})
	assert.Equal(t, float64(1), dash["doctors"])
	assert.Equal(t, float64(1), dash["patients"])
	assert.Equal(t, float64(1), dash["appointments"])
}

func TestDoctorPanel(t *testing.T) {
	r := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@clinic.test", "password": "admin-pass"})
	adminToken := body["token"].(string)
	addDoctor(t, r, adminToken, "grey@clinic.test")

	w, body := doJSON(t, r, http.MethodPost, "/api/doctor/login", "", gin.H{"email": "grey@clinic.test", "password": "surgeon123"})
	require.Equal(t, http.StatusOK, w.Code)
	doctorToken := body["token"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/doctor/profile", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := body["profileData"].(map[string]interface{})
	docID := profile["id"].(string)
	assert.NotContains(t, profile, "passwordHash")

	w, _ = doJSON(t, r, http.MethodPost, "/api/doctor/update-profile", doctorToken, gin.H{
		"fees":    "75",
		"address": gin.H{"line1": "221B Baker Street"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	_, body = doJSON(t, r, http.MethodGet, "/api/doctor/profile", doctorToken, nil)
	profile = body["profileData"].(map[string]interface{})
	assert.Equal(t, float64(75), profile["feeStructure"])
	address := profile["address"].(map[string]interface{})
	assert.Equal(t, "221B Baker Street", address["line1"])
	assert.Equal(t, "Richmond Circle", address["line2"])

	w, body = doJSON(t, r, http.MethodPatch, "/api/admin/doctors/"+docID+"/availability", adminToken, gin.H{"availability": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["availability"])

	_, body = doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Ann", "email": "ann@mail.test", "password": "password1"})
	patientToken := body["token"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/book-appointment", patientToken, gin.H{"docId": docID, "slotDate": "02_01_2025", "slotTime": "09:00 AM"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "doctor_unavailable", body["code"])

	w, body = doJSON(t, r, http.MethodPost, "/api/doctor/change-availability", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["availability"])

	w, body = doJSON(t, r, http.MethodPost, "/api/user/book-appointment", patientToken, gin.H{"docId": docID, "slotDate": "02_01_2025", "slotTime": "09:00 AM"})
	require.Equal(t, http.StatusOK, w.Code)
	apptID := body["appointment"].(map[string]interface{})["id"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/doctor/appointments", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := body["appointments"].([]interface{})
	require.Len(t, listed, 1)
	joined := listed[0].(map[string]interface{})["patient"].(map[string]interface{})
	assert.Equal(t, "Ann", joined["name"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/doctor/complete-appointment", doctorToken, gin.H{"appointmentId": apptID})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/api/doctor/dashboard", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := body["dashData"].(map[string]interface{})
	assert.Equal(t, float64(75), dash["earnings"])
	assert.Equal(t, float64(1), dash["patients"])
}

func TestRoleEnforcement(t *testing.T) {
	r := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Ann", "email": "ann@mail.test", "password": "password1"})
	patientToken := body["token"].(string)

	w, _ := doJSON(t, r, http.MethodGet, "/api/user/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/appointments", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/doctor/appointments", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Bob", "email": "bob@mail.test", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestReceiptDownload(t *testing.T) {
	r := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@clinic.test", "password": "admin-pass"})
	addDoctor(t, r, body["token"].(string), "grey@clinic.test")
	_, body = doJSON(t, r, http.MethodGet, "/api/doctor/list", "", nil)
	docID := body["doctors"].([]interface{})[0].(map[string]interface{})["id"].(string)

	_, body = doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Ann", "email": "ann@mail.test", "password": "password1"})
	patientToken := body["token"].(string)
	_, body = doJSON(t, r, http.MethodPost, "/api/user/book-appointment", patientToken, gin.H{"docId": docID, "slotDate": "03_01_2025", "slotTime": "11:00 AM"})
	apptID := body["appointment"].(map[string]interface{})["id"].(string)

	w, _ := doJSON(t, r, http.MethodGet, "/api/user/appointments/"+apptID+"/receipt", patientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestAdminChangeAvailability(t *testing.T) {
	r := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@clinic.test", "password": "admin-pass"})
	adminToken := body["token"].(string)
	addDoctor(t, r, adminToken, "grey@clinic.test")
	_, body = doJSON(t, r, http.MethodGet, "/api/doctor/list", "", nil)
	docID := body["doctors"].([]interface{})[0].(map[string]interface{})["id"].(string)

	tests := []struct {
		name   string
		body   gin.H
		code   int
		expect interface{}
	}{
		{"explicit true keeps the doctor available", gin.H{"docId": docID, "value": true}, http.StatusOK, true},
		{"explicit false", gin.H{"docId": docID, "value": false}, http.StatusOK, false},
		{"repeated false stays false", gin.H{"docId": docID, "value": "false"}, http.StatusOK, false},
		{"absent value toggles", gin.H{"docId": docID}, http.StatusOK, true},
		{"bad value", gin.H{"docId": docID, "value": "maybe"}, http.StatusBadRequest, nil},
		{"missing docId", gin.H{"value": true}, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doJSON(t, r, http.MethodPost, "/api/admin/change-availability", adminToken, tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.expect != nil {
				assert.Equal(t, tt.expect, body["availability"])
			}
		})
	}
}
