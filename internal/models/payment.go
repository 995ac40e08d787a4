package models

import "time"

// Payment status values. Once a record leaves StatusPending it is terminal.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// PaymentStatus tracks one STK push attempt, keyed by the gateway-issued
// checkout request ID. Created on a successful initiate, updated by the
// status poll or the gateway callback.
type PaymentStatus struct {
	CheckoutRequestID string         `json:"checkoutRequestId"`
	Status            string         `json:"status"`
	PhoneNumber       string         `json:"phoneNumber,omitempty"`
	Amount            float64        `json:"amount,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
	MerchantRequestID string         `json:"merchantRequestId,omitempty"`
	ResultDesc        string         `json:"resultDesc,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Terminal reports whether the record has reached success or failed.
func (p *PaymentStatus) Terminal() bool {
	return p.Status == StatusSuccess || p.Status == StatusFailed
}
