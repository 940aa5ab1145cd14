package handlers

import (
	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves the public directory and the doctor panel.
type DoctorHandler struct {
	DoctorService      doctor.DoctorService
	AppointmentService appointment.AppointmentService
	DashboardService   dashboard.DashboardService
}

// ListDoctorsHandler handles GET /api/doctor/list. Optional query filters:
// speciality, available=true.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	filter := models.DoctorFilter{Speciality: c.Query("speciality")}
	if v := c.Query("available"); v != "" {
		available, err := coerceBool(v)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("Invalid available filter"))
			return
		}
		filter.AvailableOnly = available
	}
	doctors, err := h.DoctorService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"doctors": doctors})
}

// LoginHandler handles POST /api/doctor/login.
func (h *DoctorHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.DoctorService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

// AppointmentsHandler handles GET /api/doctor/appointments.
func (h *DoctorHandler) AppointmentsHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	appts, err := h.AppointmentService.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

// CompleteAppointmentHandler handles POST /api/doctor/complete-appointment.
func (h *DoctorHandler) CompleteAppointmentHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	var req struct {
		AppointmentID string `json:"appointmentId"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.AppointmentService.MarkCompleted(c.Request.Context(), doctorID, req.AppointmentID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Completed"})
}

// CancelAppointmentHandler handles POST /api/doctor/cancel-appointment.
func (h *DoctorHandler) CancelAppointmentHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	cancelAppointment(c, h.AppointmentService, appointment.Actor{ID: doctorID, Role: utils.RoleDoctor})
}

// ProfileHandler handles GET /api/doctor/profile.
func (h *DoctorHandler) ProfileHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	profile, err := h.DoctorService.GetProfile(c.Request.Context(), doctorID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"profileData": profile})
}

// UpdateProfileHandler handles POST /api/doctor/update-profile. Only the
// fields present in the body are changed.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	var body map[string]interface{}
	if !bindJSON(c, &body) {
		return
	}
	update, err := doctorUpdateFromBody(body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := h.DoctorService.UpdateProfile(c.Request.Context(), doctorID, update); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Profile Updated"})
}

// ChangeAvailabilityHandler handles POST /api/doctor/change-availability.
func (h *DoctorHandler) ChangeAvailabilityHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	doc, err := h.DoctorService.ToggleAvailability(c.Request.Context(), doctorID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Availability Changed", "availability": doc.Availability})
}

// DashboardHandler handles GET /api/doctor/dashboard.
func (h *DoctorHandler) DashboardHandler(c *gin.Context) {
	doctorID, found := subject(c, middleware.DoctorIDKey)
	if !found {
		return
	}
	dash, err := h.DashboardService.Doctor(c.Request.Context(), doctorID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"dashData": dash})
}

// doctorUpdateFromBody maps the loosely typed update body onto a partial
// update. "fees" is accepted as an alias of "feeStructure" and "available"
// of "availability".
func doctorUpdateFromBody(body map[string]interface{}) (models.DoctorUpdate, error) {
	var update models.DoctorUpdate

	if raw, present := firstPresent(body, "feeStructure", "fees"); present {
		fee, err := coerceFloat(raw)
		if err != nil {
			return update, utils.NewValidationError("Fee must be a number")
		}
		update.FeeStructure = &fee
	}
	if raw, present := firstPresent(body, "availability", "available"); present {
		available, err := coerceBool(raw)
		if err != nil {
			return update, utils.NewValidationError("Availability must be true or false")
		}
		update.Availability = &available
	}
	if raw, present := body["address"]; present {
		addr, isMap := raw.(map[string]interface{})
		if !isMap {
			return update, utils.NewValidationError("Invalid address")
		}
		if v, present := addr["line1"]; present {
			line1, _ := v.(string)
			update.AddressLine1 = &line1
		}
		if v, present := addr["line2"]; present {
			line2, _ := v.(string)
			update.AddressLine2 = &line2
		}
	}
	if raw, present := body["about"]; present {
		about, isString := raw.(string)
		if !isString {
			return update, utils.NewValidationError("About must be text")
		}
		update.About = &about
	}
	return update, nil
}

func firstPresent(body map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, present := body[k]; present {
			return v, true
		}
	}
	return nil, false
}
