package handler

import (
	"testing"
	"time"

	"github.com/collinskipkorir28/surfaypro/internal/models"
	"github.com/collinskipkorir28/surfaypro/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newWebhookTestRouter(repo *repository.PaymentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/mpesa/callback", NewMpesaWebhookHandler(repo).Handle)
	return r
}

func seedPending(repo *repository.PaymentRepository, id string) {
	repo.Create(&models.PaymentStatus{
		CheckoutRequestID: id,
		Status:            models.StatusPending,
		PhoneNumber:       "254712345678",
		Amount:            199,
		Timestamp:         time.Now(),
	})
}

func callbackBody(id string, resultCode int, resultDesc string, items []gin.H) gin.H {
	stk := gin.H{
		"MerchantRequestID": "29115-34620561-1",
		"CheckoutRequestID": id,
		"ResultCode":        resultCode,
		"ResultDesc":        resultDesc,
	}
	if items != nil {
		stk["CallbackMetadata"] = gin.H{"Item": items}
	}
	return gin.H{"Body": gin.H{"stkCallback": stk}}
}

func requireAck(t *testing.T, got map[string]any) {
	t.Helper()
	require.Equal(t, float64(0), got["ResultCode"])
	require.Equal(t, "Success", got["ResultDesc"])
}

func TestCallback_SuccessWithMetadata(t *testing.T) {
	repo := repository.NewPaymentRepository()
	seedPending(repo, "ws_CO_1")
	r := newWebhookTestRouter(repo)

	rr := postJSON(t, r, "/api/mpesa/callback", callbackBody("ws_CO_1", 0, "The service request is processed successfully.", []gin.H{
		{"Name": "Amount", "Value": 199},
		{"Name": "MpesaReceiptNumber", "Value": "ABC123"},
		{"Name": "PhoneNumber", "Value": 254712345678},
	}))
	require.Equal(t, 200, rr.Code)
	requireAck(t, decodeBody(t, rr))

	rec, ok := repo.Get("ws_CO_1")
	require.True(t, ok)
	require.Equal(t, models.StatusSuccess, rec.Status)
	require.Equal(t, float64(199), rec.Metadata["Amount"])
	require.Equal(t, "ABC123", rec.Metadata["MpesaReceiptNumber"])
}

func TestCallback_DuplicateMetadataNameLastWins(t *testing.T) {
	repo := repository.NewPaymentRepository()
	seedPending(repo, "ws_CO_1")
	r := newWebhookTestRouter(repo)

	postJSON(t, r, "/api/mpesa/callback", callbackBody("ws_CO_1", 0, "ok", []gin.H{
		{"Name": "Amount", "Value": 100},
		{"Name": "Amount", "Value": 199},
	}))

	rec, _ := repo.Get("ws_CO_1")
	require.Equal(t, float64(199), rec.Metadata["Amount"])
}

func TestCallback_FailureKeepsDescription(t *testing.T) {
	repo := repository.NewPaymentRepository()
	seedPending(repo, "ws_CO_1")
	r := newWebhookTestRouter(repo)

	rr := postJSON(t, r, "/api/mpesa/callback", callbackBody("ws_CO_1", 1032, "Request cancelled by user", nil))
	requireAck(t, decodeBody(t, rr))

	rec, _ := repo.Get("ws_CO_1")
	require.Equal(t, models.StatusFailed, rec.Status)
	require.Equal(t, "Request cancelled by user", rec.ResultDesc)
}

func TestCallback_UnknownIDStillAcked(t *testing.T) {
	repo := repository.NewPaymentRepository()
	r := newWebhookTestRouter(repo)

	rr := postJSON(t, r, "/api/mpesa/callback", callbackBody("ws_CO_ghost", 0, "ok", nil))
	require.Equal(t, 200, rr.Code)
	requireAck(t, decodeBody(t, rr))
	require.Empty(t, repo.List(), "unknown callback must not create a record")
}

func TestCallback_MalformedBodyStillAcked(t *testing.T) {
	repo := repository.NewPaymentRepository()
	r := newWebhookTestRouter(repo)

	for _, body := range []any{gin.H{}, gin.H{"Body": gin.H{}}, "not even json shaped"} {
		rr := postJSON(t, r, "/api/mpesa/callback", body)
		require.Equal(t, 200, rr.Code)
		requireAck(t, decodeBody(t, rr))
	}
	require.Empty(t, repo.List())
}

func TestCallback_SettledRecordNotOverwritten(t *testing.T) {
	repo := repository.NewPaymentRepository()
	seedPending(repo, "ws_CO_1")
	require.True(t, repo.Transition("ws_CO_1", models.StatusSuccess, "Processed", map[string]any{"MpesaReceiptNumber": "ABC123"}))
	r := newWebhookTestRouter(repo)

	// a late conflicting callback is acknowledged but dropped
	rr := postJSON(t, r, "/api/mpesa/callback", callbackBody("ws_CO_1", 1037, "DS timeout", nil))
	requireAck(t, decodeBody(t, rr))

	rec, _ := repo.Get("ws_CO_1")
	require.Equal(t, models.StatusSuccess, rec.Status)
	require.Equal(t, "ABC123", rec.Metadata["MpesaReceiptNumber"])
}
