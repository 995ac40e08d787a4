package handler

import (
	"net/http"

	"github.com/collinskipkorir28/surfaypro/internal/repository"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	paymentRepo *repository.PaymentRepository
	userRepo    *repository.UserRepository
}

func NewAdminHandler(paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository) *AdminHandler {
	return &AdminHandler{paymentRepo: paymentRepo, userRepo: userRepo}
}

// ListPayments handles GET /api/admin/payments — every record, creation order.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": h.paymentRepo.List(),
	})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   h.userRepo.List(),
	})
}
