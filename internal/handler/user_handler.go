package handler

import (
	"log"
	"net/http"

	"github.com/collinskipkorir28/surfaypro/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userRepo *repository.UserRepository
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Register handles POST /api/users/register. No uniqueness checks: the same
// email registered twice produces two users with distinct IDs.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields are required",
		})
		return
	}
	u := h.userRepo.Create(req.Name, req.Email, req.Phone)
	log.Printf("[USERS] registered id=%d name=%s email=%s", u.ID, u.Name, u.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    u,
	})
}
