package models

// OrderRequest asks a gateway for a payment order in minor currency units.
type OrderRequest struct {
	AppointmentID string
	AmountMinor   int64
	Currency      string
}

// PaymentOrder is the gateway-issued order handed back to the client to complete checkout.
type PaymentOrder struct {
	ID           string `json:"id"`
	Gateway      string `json:"gateway"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Receipt      string `json:"receipt"`
	Status       string `json:"status,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// PaymentReceipt holds the gateway references persisted on a paid appointment.
type PaymentReceipt struct {
	OrderID   string
	PaymentID string
	Signature string
}
