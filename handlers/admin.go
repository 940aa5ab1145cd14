package handlers

import (
	"io"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/admin"
	"medibook/services/appointment"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin panel.
type AdminHandler struct {
	AdminService       admin.AdminService
	DoctorService      doctor.DoctorService
	AppointmentService appointment.AppointmentService
	DashboardService   dashboard.DashboardService
}

// LoginHandler handles POST /api/admin/login.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.AdminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

// AddDoctorHandler handles the multipart POST /api/admin/add-doctor.
func (h *AdminHandler) AddDoctorHandler(c *gin.Context) {
	logger := getLogger(c)

	req := models.NewDoctorRequest{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Speciality: c.PostForm("speciality"),
		Degree:     c.PostForm("degree"),
		Experience: c.PostForm("experience"),
		About:      c.PostForm("about"),
	}

	fee := c.PostForm("feeStructure")
	if fee == "" {
		fee = c.PostForm("fees")
	}
	if fee != "" {
		parsed, err := coerceFloat(fee)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("Fee must be a number"))
			return
		}
		req.FeeStructure = parsed
	}

	if raw := c.PostForm("address"); raw != "" {
		addr, err := parseAddress(raw)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("Invalid address"))
			return
		}
		req.Address = addr
	}

	var image io.Reader
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			logger.Warn("Failed to open uploaded image", zap.Error(err))
			utils.RespondError(c, utils.NewValidationError("Invalid image upload"))
			return
		}
		defer f.Close()
		image = f
	}

	doc, err := h.DoctorService.Onboard(c.Request.Context(), req, image)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info("Doctor onboarded", zap.String("doctorId", doc.ID))
	ok(c, gin.H{"message": "Doctor Added", "doctorId": doc.ID})
}

// AllDoctorsHandler handles POST /api/admin/all-doctors.
func (h *AdminHandler) AllDoctorsHandler(c *gin.Context) {
	doctors, err := h.DoctorService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"doctors": doctors})
}

// SetAvailabilityHandler handles PATCH /api/admin/doctors/:id/availability.
func (h *AdminHandler) SetAvailabilityHandler(c *gin.Context) {
	var body map[string]interface{}
	if !bindJSON(c, &body) {
		return
	}
	raw, present := body["availability"]
	if !present {
		utils.RespondError(c, utils.NewValidationError("Missing availability"))
		return
	}
	available, err := coerceBool(raw)
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("Availability must be true or false"))
		return
	}
	doc, err := h.DoctorService.SetAvailability(c.Request.Context(), c.Param("id"), available)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Availability Changed", "availability": doc.Availability})
}

// ChangeAvailabilityHandler handles POST /api/admin/change-availability.
// The doctor named by docId gets availability set to value, or flipped when
// value is absent.
func (h *AdminHandler) ChangeAvailabilityHandler(c *gin.Context) {
	var body map[string]interface{}
	if !bindJSON(c, &body) {
		return
	}
	docID, _ := body["docId"].(string)
	if docID == "" {
		utils.RespondError(c, utils.NewValidationError("Missing docId"))
		return
	}

	var (
		doc *models.Doctor
		err error
	)
	if raw, present := body["value"]; present && raw != nil {
		available, convErr := coerceBool(raw)
		if convErr != nil {
			utils.RespondError(c, utils.NewValidationError("Availability must be true or false"))
			return
		}
		doc, err = h.DoctorService.SetAvailability(c.Request.Context(), docID, available)
	} else {
		doc, err = h.DoctorService.ToggleAvailability(c.Request.Context(), docID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Availability Changed", "availability": doc.Availability})
}

// AppointmentsHandler handles GET /api/admin/appointments.
func (h *AdminHandler) AppointmentsHandler(c *gin.Context) {
	appts, err := h.AppointmentService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles POST /api/admin/cancel-appointment.
func (h *AdminHandler) CancelAppointmentHandler(c *gin.Context) {
	adminID, found := subject(c, middleware.AdminIDKey)
	if !found {
		return
	}
	cancelAppointment(c, h.AppointmentService, appointment.Actor{ID: adminID, Role: utils.RoleAdmin})
}

// DashboardHandler handles GET /api/admin/dashboard.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	dash, err := h.DashboardService.Admin(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"dashData": dash})
}
