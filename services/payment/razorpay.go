package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"medibook/models"
	"medibook/utils"

	"github.com/razorpay/razorpay-go"
)

// razorpayOrders is the part of the Razorpay SDK used to open orders.
type razorpayOrders interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway opens Razorpay orders and checks checkout signatures.
type RazorpayGateway struct {
	orders    razorpayOrders
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: client.Order, keySecret: keySecret}
}

func (g *RazorpayGateway) Name() string {
	return "razorpay"
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
	data := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": req.Currency,
		"receipt":  req.AppointmentID,
	}
	body, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order response has no id")
	}
	status, _ := body["status"].(string)
	return &models.PaymentOrder{
		ID:       id,
		Gateway:  g.Name(),
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.AppointmentID,
		Status:   status,
	}, nil
}

// Verify recomputes the checkout signature and compares it in constant time.
func (g *RazorpayGateway) Verify(ctx context.Context, orderRef, paymentRef, signature string) error {
	if !VerifySignature(g.keySecret, orderRef, paymentRef, signature) {
		return utils.ErrSignatureMismatch
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of "orderRef|paymentRef" under secret.
func Sign(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches Sign(secret, orderRef, paymentRef).
func VerifySignature(secret, orderRef, paymentRef, signature string) bool {
	expected := Sign(secret, orderRef, paymentRef)
	return hmac.Equal([]byte(expected), []byte(signature))
}
