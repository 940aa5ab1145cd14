package payment

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
)

// Gateway is a payment provider able to open orders and confirm payments.
type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error)
	// Verify confirms that paymentRef settled orderRef. A forged or unsettled
	// payment yields an error of kind signature_mismatch.
	Verify(ctx context.Context, orderRef, paymentRef, signature string) error
}

type PaymentService interface {
	CreateIntent(ctx context.Context, patientID, appointmentID string) (*models.PaymentOrder, error)
	Verify(ctx context.Context, patientID string, req VerifyRequest) (*models.Appointment, error)
}

// VerifyRequest carries the gateway callback fields posted by the client.
type VerifyRequest struct {
	AppointmentID string
	OrderRef      string
	PaymentRef    string
	Signature     string
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Gateway      Gateway
	Currency     string
}
