package handler

import (
	"net/http"
	"time"

	"github.com/collinskipkorir28/surfaypro/config"

	"github.com/gin-gonic/gin"
)

type MetaHandler struct {
	cfg *config.Config
}

func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

// Health handles GET /api/health — liveness plus a gateway config summary.
func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().Format(time.RFC3339),
		"mpesa": gin.H{
			"apiUrl":            h.cfg.Mpesa.APIURL,
			"businessShortCode": h.cfg.Mpesa.BusinessShortCode,
		},
	})
}

// Index handles GET /api — a self-description of the exposed endpoints.
func (h *MetaHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Survey Pro M-PESA Backend API",
		"status":  "running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"stkPush":       "POST /api/mpesa/stkpush",
			"checkStatus":   "POST /api/mpesa/status",
			"callback":      "POST /api/mpesa/callback",
			"register":      "POST /api/users/register",
			"health":        "GET /api/health",
			"adminPayments": "GET /api/admin/payments",
			"adminUsers":    "GET /api/admin/users",
		},
		"documentation": gin.H{
			"stkPush": gin.H{
				"method": "POST",
				"body": gin.H{
					"phoneNumber": "0712345678",
					"amount":      199,
				},
			},
			"checkStatus": gin.H{
				"method": "POST",
				"body": gin.H{
					"checkoutRequestId": "ws_CO_01012023123456789",
				},
			},
		},
	})
}
