package domain

import "time"

// User is the profile record of an authenticated caller. Its ID always equals
// the caller identity attached by the gateway, so a user can never create a
// profile for anyone but themselves.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
