package handlers

import (
	"fmt"
	"io"
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/services/payment"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the patient-facing API.
type UserHandler struct {
	UserService        user.UserService
	AppointmentService appointment.AppointmentService
	PaymentService     payment.PaymentService
}

// RegisterHandler handles POST /api/user/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req user.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token})
}

// LoginHandler handles POST /api/user/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token})
}

// GetProfileHandler returns the authenticated patient's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	profile, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"userData": profile})
}

// UpdateProfileHandler applies a multipart partial update with an optional image.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}

	var update models.PatientUpdate
	if v, present := c.GetPostForm("name"); present {
		update.Name = &v
	}
	if v, present := c.GetPostForm("phone"); present {
		update.Phone = &v
	}
	if v, present := c.GetPostForm("dob"); present {
		update.DOB = &v
	}
	if v, present := c.GetPostForm("gender"); present {
		update.Gender = &v
	}
	if v, present := c.GetPostForm("address"); present {
		addr, err := parseAddress(v)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("Invalid address"))
			return
		}
		update.Address = &addr
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

	if _, err := h.UserService.UpdateProfile(c.Request.Context(), userID, update, image); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Profile Updated"})
}

// BookAppointmentHandler handles POST /api/user/book-appointment.
func (h *UserHandler) BookAppointmentHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	var req struct {
		DocID    string `json:"docId"`
		SlotDate string `json:"slotDate"`
		SlotTime string `json:"slotTime"`
	}
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.AppointmentService.Book(c.Request.Context(), userID, req.DocID, req.SlotDate, req.SlotTime)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Booked", "appointment": appt})
}

// ListAppointmentsHandler handles GET /api/user/appointments.
func (h *UserHandler) ListAppointmentsHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	appts, err := h.AppointmentService.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles POST /api/user/cancel-appointment.
func (h *UserHandler) CancelAppointmentHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	cancelAppointment(c, h.AppointmentService, appointment.Actor{ID: userID, Role: utils.RolePatient})
}

// PaymentHandler handles POST /api/user/payment-razorpay.
func (h *UserHandler) PaymentHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	var req struct {
		AppointmentID string `json:"appointmentId"`
	}
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.PaymentService.CreateIntent(c.Request.Context(), userID, req.AppointmentID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"order": order})
}

// VerifyPaymentHandler handles POST /api/user/payment-verify.
func (h *UserHandler) VerifyPaymentHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	var req struct {
		AppointmentID string `json:"appointmentId"`
		OrderID       string `json:"razorpay_order_id"`
		PaymentID     string `json:"razorpay_payment_id"`
		Signature     string `json:"razorpay_signature"`
	}
	if !bindJSON(c, &req) {
		return
	}
	_, err := h.PaymentService.Verify(c.Request.Context(), userID, payment.VerifyRequest{
		AppointmentID: req.AppointmentID,
		OrderRef:      req.OrderID,
		PaymentRef:    req.PaymentID,
		Signature:     req.Signature,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Payment Successful"})
}

// ReceiptHandler handles GET /api/user/appointments/:id/receipt.
func (h *UserHandler) ReceiptHandler(c *gin.Context) {
	userID, found := subject(c, middleware.UserIDKey)
	if !found {
		return
	}
	id := c.Param("id")
	pdf, err := h.AppointmentService.Receipt(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// cancelAppointment is shared by the patient, doctor and admin cancel routes.
func cancelAppointment(c *gin.Context, svc appointment.AppointmentService, actor appointment.Actor) {
	var req struct {
		AppointmentID string `json:"appointmentId"`
	}
	if !bindJSON(c, &req) {
		return
	}
	appt, err := svc.Cancel(c.Request.Context(), actor, req.AppointmentID)
	if err != nil {
		fail(c, err)
		return
	}
	message := "Appointment cancelled successfully"
	if appt.Payment {
		message = "Appointment cancelled. Payment recorded."
	}
	ok(c, gin.H{"message": message})
}
