package payment

import "context"

// STKPushRequest describes one push-payment prompt to send to a payer.
type STKPushRequest struct {
	PhoneNumber      string // normalized, e.g. 254712345678
	Amount           int64  // whole KES
	AccountReference string
	Description      string
}

// STKPushResponse is the gateway's synchronous answer to a push request.
// ResponseCode "0" means the prompt was accepted for delivery.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKQueryResponse is the gateway's answer to a status query. ResultCode "0"
// is success, "1032" and "1037" mean the prompt is still outstanding.
type STKQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

type Provider interface {
	STKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error)
	STKQuery(ctx context.Context, checkoutRequestID string) (*STKQueryResponse, error)
}
