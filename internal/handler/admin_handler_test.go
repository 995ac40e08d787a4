package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/collinskipkorir28/surfaypro/internal/models"
	"github.com/collinskipkorir28/surfaypro/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAdmin_ListPayments(t *testing.T) {
	paymentRepo := repository.NewPaymentRepository()
	userRepo := repository.NewUserRepository()
	for _, id := range []string{"ws_CO_1", "ws_CO_2", "ws_CO_3"} {
		paymentRepo.Create(&models.PaymentStatus{
			CheckoutRequestID: id,
			Status:            models.StatusPending,
			Timestamp:         time.Now(),
		})
	}
	paymentRepo.Transition("ws_CO_2", models.StatusSuccess, "", map[string]any{"MpesaReceiptNumber": "ABC123"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAdminHandler(paymentRepo, userRepo)
	r.GET("/api/admin/payments", h.ListPayments)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/payments", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody(t, rr)
	require.Equal(t, true, got["success"])

	payments := got["payments"].([]any)
	require.Len(t, payments, 3)
	for i, id := range []string{"ws_CO_1", "ws_CO_2", "ws_CO_3"} {
		require.Equal(t, id, payments[i].(map[string]any)["checkoutRequestId"])
	}
	second := payments[1].(map[string]any)
	require.Equal(t, models.StatusSuccess, second["status"])
	require.Equal(t, "ABC123", second["metadata"].(map[string]any)["MpesaReceiptNumber"])
}

func TestAdmin_ListUsers(t *testing.T) {
	paymentRepo := repository.NewPaymentRepository()
	userRepo := repository.NewUserRepository()
	userRepo.Create("Alice", "alice@example.com", "0712345678")
	userRepo.Create("Bob", "bob@example.com", "0700000001")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAdminHandler(paymentRepo, userRepo)
	r.GET("/api/admin/users", h.ListUsers)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody(t, rr)
	require.Equal(t, true, got["success"])

	users := got["users"].([]any)
	require.Len(t, users, 2)
	require.Equal(t, "Alice", users[0].(map[string]any)["name"])
	require.Equal(t, "Bob", users[1].(map[string]any)["name"])
}
