package payment

import (
	"context"
	"errors"
	"testing"

	memoryRepo "medibook/database/repository/memory"
	"medibook/models"
	"medibook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rzp_test_secret"

type fakeOrders struct {
	calls []map[string]interface{}
	err   error
}

func (f *fakeOrders) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	f.calls = append(f.calls, data)
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"id": "order_123", "status": "created"}, nil
}

func newPaymentService(t *testing.T, orders *fakeOrders) (*DefaultPaymentService, *memoryRepo.AppointmentRepo) {
	t.Helper()
	appts := memoryRepo.NewStore().Appointments()
	require.NoError(t, appts.Create(context.Background(), &models.Appointment{
		ID:        "A1",
		PatientID: "P1",
		DoctorID:  "D1",
		SlotDate:  "01_01_2025",
		SlotTime:  "10:00 AM",
		SlotKey:   "01_01_2025 10:00 AM",
		Amount:    49.99,
	}))
	svc := &DefaultPaymentService{
		Appointments: appts,
		Gateway:      &RazorpayGateway{orders: orders, keySecret: testSecret},
		Currency:     "INR",
	}
	return svc, appts
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), MinorUnits(50))
	assert.Equal(t, int64(4999), MinorUnits(49.99))
	assert.Equal(t, int64(1), MinorUnits(0.005))
	assert.Equal(t, int64(0), MinorUnits(0))
}

func TestSignatureRoundTrip(t *testing.T) {
	sig := Sign(testSecret, "order_123", "pay_456")
	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(testSecret, "order_123", "pay_456", sig))
	assert.False(t, VerifySignature(testSecret, "order_123", "pay_457", sig))
	assert.False(t, VerifySignature("other", "order_123", "pay_456", sig))
	assert.False(t, VerifySignature(testSecret, "order_123", "pay_456", ""))
}

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}
	svc, appts := newPaymentService(t, orders)

	order, err := svc.CreateIntent(ctx, "P1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, int64(4999), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "A1", order.Receipt)

	require.Len(t, orders.calls, 1)
	assert.Equal(t, int64(4999), orders.calls[0]["amount"])
	assert.Equal(t, "A1", orders.calls[0]["receipt"])

	stored, err := appts.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", stored.OrderID)
}

func TestCreateIntentRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("other patient", func(t *testing.T) {
		svc, _ := newPaymentService(t, &fakeOrders{})
		_, err := svc.CreateIntent(ctx, "P2", "A1")
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})

	t.Run("missing appointment", func(t *testing.T) {
		svc, _ := newPaymentService(t, &fakeOrders{})
		_, err := svc.CreateIntent(ctx, "P1", "A404")
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})

	t.Run("cancelled appointment", func(t *testing.T) {
		svc, appts := newPaymentService(t, &fakeOrders{})
		_, err := appts.MarkCancelled(ctx, "A1")
		require.NoError(t, err)
		_, err = svc.CreateIntent(ctx, "P1", "A1")
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("gateway down", func(t *testing.T) {
		svc, appts := newPaymentService(t, &fakeOrders{err: errors.New("connection refused")})
		_, err := svc.CreateIntent(ctx, "P1", "A1")
		assert.Equal(t, utils.KindUpstream, utils.KindOf(err))
		stored, _ := appts.GetByID(ctx, "A1")
		assert.Empty(t, stored.OrderID)
	})
}

func TestVerifyTamperedSignature(t *testing.T) {
	ctx := context.Background()
	svc, appts := newPaymentService(t, &fakeOrders{})

	_, err := svc.CreateIntent(ctx, "P1", "A1")
	require.NoError(t, err)

	sig := Sign(testSecret, "order_123", "pay_456")
	tampered := []byte(sig)
	tampered[0] ^= 1

	_, err = svc.Verify(ctx, "P1", VerifyRequest{
		AppointmentID: "A1",
		OrderRef:      "order_123",
		PaymentRef:    "pay_456",
		Signature:     string(tampered),
	})
	assert.ErrorIs(t, err, utils.ErrSignatureMismatch)
	assert.Equal(t, utils.KindSignatureMismatch, utils.KindOf(err))

	stored, err := appts.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, stored.Payment)
}

func TestVerifyMarksPaid(t *testing.T) {
	ctx := context.Background()
	svc, appts := newPaymentService(t, &fakeOrders{})

	_, err := svc.CreateIntent(ctx, "P1", "A1")
	require.NoError(t, err)

	req := VerifyRequest{
		AppointmentID: "A1",
		OrderRef:      "order_123",
		PaymentRef:    "pay_456",
		Signature:     Sign(testSecret, "order_123", "pay_456"),
	}
	appt, err := svc.Verify(ctx, "P1", req)
	require.NoError(t, err)
	assert.True(t, appt.Payment)
	assert.True(t, appt.PaymentVerified())

	stored, err := appts.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.Equal(t, "pay_456", stored.PaymentID)

	// Replaying the same callback is a no-op.
	again, err := svc.Verify(ctx, "P1", req)
	require.NoError(t, err)
	assert.True(t, again.Payment)
}

func TestVerifyReplayStillChecksSignature(t *testing.T) {
	ctx := context.Background()
	svc, appts := newPaymentService(t, &fakeOrders{})

	_, err := svc.CreateIntent(ctx, "P1", "A1")
	require.NoError(t, err)

	signature := Sign(testSecret, "order_123", "pay_456")
	_, err = svc.Verify(ctx, "P1", VerifyRequest{
		AppointmentID: "A1",
		OrderRef:      "order_123",
		PaymentRef:    "pay_456",
		Signature:     signature,
	})
	require.NoError(t, err)

	flipped := []byte(signature)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}

	for _, sig := range []string{string(flipped), "deadbeef"} {
		_, err = svc.Verify(ctx, "P1", VerifyRequest{
			AppointmentID: "A1",
			OrderRef:      "order_123",
			PaymentRef:    "pay_456",
			Signature:     sig,
		})
		assert.ErrorIs(t, err, utils.ErrSignatureMismatch, sig)
	}

	stored, err := appts.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, signature, stored.Signature)
}

func TestVerifyRejections(t *testing.T) {
	ctx := context.Background()
	svc, appts := newPaymentService(t, &fakeOrders{})
	_, err := svc.CreateIntent(ctx, "P1", "A1")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "P1", VerifyRequest{AppointmentID: "A1", OrderRef: "order_123"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	valid := VerifyRequest{
		AppointmentID: "A1",
		OrderRef:      "order_123",
		PaymentRef:    "pay_456",
		Signature:     Sign(testSecret, "order_123", "pay_456"),
	}
	_, err = svc.Verify(ctx, "P2", valid)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// A correctly signed payment for a different order cannot settle this appointment.
	otherOrder := VerifyRequest{
		AppointmentID: "A1",
		OrderRef:      "order_999",
		PaymentRef:    "pay_456",
		Signature:     Sign(testSecret, "order_999", "pay_456"),
	}
	_, err = svc.Verify(ctx, "P1", otherOrder)
	assert.ErrorIs(t, err, utils.ErrSignatureMismatch)

	stored, err := appts.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, stored.Payment)
}
