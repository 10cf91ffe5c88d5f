package domain

import "time"

// Partner represents a mobile/home-service partner who owns Jobs
type Partner struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
