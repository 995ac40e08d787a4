package repository

import (
	"sync"
	"time"

	"github.com/collinskipkorir28/surfaypro/internal/models"
)

// UserRepository is an append-only in-memory user list. IDs are allocated
// from a counter under the store lock, so concurrent registrations get
// distinct sequential IDs. No uniqueness checks on any field.
type UserRepository struct {
	mu     sync.RWMutex
	users  []models.User
	nextID int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1}
}

// Create appends a user, assigning the ID, signup bonus and registration
// time, and returns the stored record.
func (r *UserRepository) Create(name, email, phone string) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := models.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Earnings:     models.SignupBonus,
		RegisteredAt: time.Now(),
	}
	r.nextID++
	r.users = append(r.users, u)
	return u
}

// List returns all users in registration order.
func (r *UserRepository) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}
