package models

import "time"

// SignupBonus is credited to every new user's earnings on registration.
const SignupBonus = 50

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Earnings     int       `json:"earnings"`
	RegisteredAt time.Time `json:"registeredAt"`
}
