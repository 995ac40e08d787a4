package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/collinskipkorir28/surfaypro/config"
	"github.com/collinskipkorir28/surfaypro/internal/models"
	"github.com/collinskipkorir28/surfaypro/internal/repository"
	"github.com/collinskipkorir28/surfaypro/pkg/payment"

	"github.com/gin-gonic/gin"
)

type MpesaHandler struct {
	cfg         *config.Config
	paymentRepo *repository.PaymentRepository
	provider    payment.Provider
}

func NewMpesaHandler(cfg *config.Config, paymentRepo *repository.PaymentRepository, provider payment.Provider) *MpesaHandler {
	return &MpesaHandler{cfg: cfg, paymentRepo: paymentRepo, provider: provider}
}

// STKPush handles POST /api/mpesa/stkpush — initiates a push prompt and
// records a pending payment on gateway acceptance.
func (h *MpesaHandler) STKPush(c *gin.Context) {
	var req struct {
		PhoneNumber string  `json:"phoneNumber"`
		Amount      float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" || req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Phone number and amount are required",
		})
		return
	}
	phone := payment.FormatPhone(req.PhoneNumber)
	log.Printf("[MPESA] STK push initiated phone=%s formatted=%s amount=%v", req.PhoneNumber, phone, req.Amount)

	resp, err := h.provider.STKPush(c.Request.Context(), payment.STKPushRequest{
		PhoneNumber: phone,
		Amount:      int64(req.Amount),
	})
	if err != nil {
		log.Printf("[MPESA] STK push error: %v", err)
		msg := "Payment initiation failed"
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) && gwErr.ErrorMessage != "" {
			msg = gwErr.ErrorMessage
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": msg,
			"error":   err.Error(),
		})
		return
	}
	if resp.ResponseCode != "0" {
		log.Printf("[MPESA] STK push rejected code=%s desc=%s", resp.ResponseCode, resp.ResponseDescription)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": resp.ResponseDescription,
		})
		return
	}
	h.paymentRepo.Create(&models.PaymentStatus{
		CheckoutRequestID: resp.CheckoutRequestID,
		Status:            models.StatusPending,
		PhoneNumber:       phone,
		Amount:            req.Amount,
		Timestamp:         time.Now(),
		MerchantRequestID: resp.MerchantRequestID,
	})
	log.Printf("[MPESA] payment initiated checkout_request_id=%s merchant_request_id=%s", resp.CheckoutRequestID, resp.MerchantRequestID)
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           resp.ResponseDescription,
		"checkoutRequestId": resp.CheckoutRequestID,
		"merchantRequestId": resp.MerchantRequestID,
	})
}

// Status handles POST /api/mpesa/status. A known record is answered from
// memory without a gateway round-trip; an unknown ID is queried against the
// gateway and the observed status is stored so later polls (and a racing
// callback) work against the same record.
func (h *MpesaHandler) Status(c *gin.Context) {
	var req struct {
		CheckoutRequestID string `json:"checkoutRequestId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CheckoutRequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Checkout Request ID is required",
		})
		return
	}
	if rec, ok := h.paymentRepo.Get(req.CheckoutRequestID); ok {
		log.Printf("[MPESA] status from memory checkout_request_id=%s status=%s", rec.CheckoutRequestID, rec.Status)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  rec.Status,
			"data":    rec,
		})
		return
	}
	resp, err := h.provider.STKQuery(c.Request.Context(), req.CheckoutRequestID)
	if err != nil {
		log.Printf("[MPESA] status query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to check payment status",
			"error":   err.Error(),
		})
		return
	}
	status := resultCodeToStatus(resp.ResultCode)
	h.paymentRepo.Create(&models.PaymentStatus{
		CheckoutRequestID: req.CheckoutRequestID,
		Status:            status,
		Timestamp:         time.Now(),
		MerchantRequestID: resp.MerchantRequestID,
		ResultDesc:        resp.ResultDesc,
	})
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"status":     status,
		"resultCode": resp.ResultCode,
		"resultDesc": resp.ResultDesc,
	})
}

// resultCodeToStatus maps a gateway query result code: "0" is success, 1032
// and 1037 are reported while the prompt is unresolved, anything else is a
// terminal failure.
func resultCodeToStatus(code string) string {
	switch code {
	case "0":
		return models.StatusSuccess
	case "1032", "1037":
		return models.StatusPending
	default:
		return models.StatusFailed
	}
}
