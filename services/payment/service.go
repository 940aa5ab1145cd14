package payment

import (
	"context"
	"errors"
	"math"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// MinorUnits converts a fee to the gateway's minor currency unit.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent opens a gateway order for an active appointment owned by the
// patient and binds the order reference to it.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, patientID, appointmentID string) (*models.PaymentOrder, error) {
	logger := utils.GetLogger()

	appt, err := s.load(ctx, patientID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Cancelled {
		return nil, utils.NewConflictError("appointment_cancelled", "Appointment Cancelled or not found")
	}
	if appt.Payment {
		return nil, utils.NewConflictError("already_paid", "Appointment already paid")
	}

	order, err := s.Gateway.CreateOrder(ctx, models.OrderRequest{
		AppointmentID: appt.ID,
		AmountMinor:   MinorUnits(appt.Amount),
		Currency:      s.Currency,
	})
	if err != nil {
		logger.Error("CreateIntent: gateway order failed",
			zap.String("appointmentID", appt.ID),
			zap.String("gateway", s.Gateway.Name()),
			zap.Error(err))
		return nil, utils.NewUpstreamError("Payment gateway unavailable", err)
	}

	if err := s.Appointments.SetOrderID(ctx, appt.ID, order.ID); err != nil {
		logger.Error("CreateIntent: failed to bind order", zap.String("appointmentID", appt.ID), zap.Error(err))
		return nil, utils.NewInternalError("failed to record payment order", err)
	}
	return order, nil
}

// Verify confirms the gateway payment and marks the appointment paid. The
// payment flag is never set when verification fails.
func (s *DefaultPaymentService) Verify(ctx context.Context, patientID string, req VerifyRequest) (*models.Appointment, error) {
	if req.AppointmentID == "" || req.OrderRef == "" || req.PaymentRef == "" || req.Signature == "" {
		return nil, utils.NewValidationError("Missing payment details")
	}

	appt, err := s.load(ctx, patientID, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.OrderID != "" && appt.OrderID != req.OrderRef {
		return nil, utils.ErrSignatureMismatch
	}

	if err := s.Gateway.Verify(ctx, req.OrderRef, req.PaymentRef, req.Signature); err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.GetLogger().Warn("Payment verification rejected",
				zap.String("appointmentID", appt.ID), zap.String("code", appErr.Code))
			return nil, err
		}
		return nil, utils.NewUpstreamError("Payment gateway unavailable", err)
	}

	// A verified callback for the payment already on record changes nothing.
	if appt.Payment && appt.PaymentID == req.PaymentRef {
		return appt, nil
	}

	receipt := models.PaymentReceipt{OrderID: req.OrderRef, PaymentID: req.PaymentRef, Signature: req.Signature}
	if err := s.Appointments.MarkPaid(ctx, appt.ID, receipt); err != nil {
		utils.GetLogger().Error("Verify: failed to record payment", zap.String("appointmentID", appt.ID), zap.Error(err))
		return nil, utils.NewInternalError("failed to record payment", err)
	}
	appt.Payment = true
	appt.OrderID = receipt.OrderID
	appt.PaymentID = receipt.PaymentID
	appt.Signature = receipt.Signature

	utils.GetLogger().Info("Payment recorded", zap.String("appointmentID", appt.ID), zap.String("gateway", s.Gateway.Name()))
	return appt, nil
}

func (s *DefaultPaymentService) load(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, utils.NewValidationError("Missing appointment id")
	}
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load appointment", err)
	}
	if appt == nil {
		return nil, utils.NewNotFoundError("Appointment Cancelled or not found")
	}
	if appt.PatientID != patientID {
		return nil, utils.NewForbiddenError("Unauthorized action")
	}
	return appt, nil
}
