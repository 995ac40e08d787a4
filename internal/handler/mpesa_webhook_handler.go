package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/collinskipkorir28/surfaypro/internal/models"
	"github.com/collinskipkorir28/surfaypro/internal/repository"

	"github.com/gin-gonic/gin"
)

// StkCallback is the gateway's asynchronous result notification, nested
// under Body.stkCallback in the delivered payload.
type StkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []struct {
			Name  string `json:"Name"`
			Value any    `json:"Value"`
		} `json:"Item"`
	} `json:"CallbackMetadata"`
}

type callbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type MpesaWebhookHandler struct {
	paymentRepo *repository.PaymentRepository
}

func NewMpesaWebhookHandler(paymentRepo *repository.PaymentRepository) *MpesaWebhookHandler {
	return &MpesaWebhookHandler{paymentRepo: paymentRepo}
}

// Handle processes POST /api/mpesa/callback. Whatever happens, the gateway
// gets the fixed acknowledgment — anything else makes it retry delivery.
func (h *MpesaWebhookHandler) Handle(c *gin.Context) {
	defer c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Success"})

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[MPESA callback] read body error: %v", err)
		return
	}
	log.Printf("[MPESA callback] raw body: %s", string(body))
	var envelope callbackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("[MPESA callback] invalid json: %v", err)
		return
	}
	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		log.Printf("[MPESA callback] no stkCallback in payload, acknowledging")
		return
	}
	log.Printf("[MPESA callback] checkout_request_id=%s result_code=%d desc=%s", cb.CheckoutRequestID, cb.ResultCode, cb.ResultDesc)

	if cb.ResultCode == 0 {
		var metadata map[string]any
		if len(cb.CallbackMetadata.Item) > 0 {
			metadata = make(map[string]any, len(cb.CallbackMetadata.Item))
			for _, item := range cb.CallbackMetadata.Item {
				metadata[item.Name] = item.Value
			}
		}
		if h.paymentRepo.Transition(cb.CheckoutRequestID, models.StatusSuccess, cb.ResultDesc, metadata) {
			log.Printf("[MPESA callback] payment successful checkout_request_id=%s metadata=%v", cb.CheckoutRequestID, metadata)
		} else {
			log.Printf("[MPESA callback] dropped result for checkout_request_id=%s (unknown or already settled)", cb.CheckoutRequestID)
		}
		return
	}
	if h.paymentRepo.Transition(cb.CheckoutRequestID, models.StatusFailed, cb.ResultDesc, nil) {
		log.Printf("[MPESA callback] payment failed checkout_request_id=%s: %s", cb.CheckoutRequestID, cb.ResultDesc)
	} else {
		log.Printf("[MPESA callback] dropped result for checkout_request_id=%s (unknown or already settled)", cb.CheckoutRequestID)
	}
}
