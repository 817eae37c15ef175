package domain

import "time"

// User represents an account that owns vehicles and policies.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
