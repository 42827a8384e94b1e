package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a login account
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Contact      string    `json:"contact"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"created_at"`
}

// AccountSnapshot is the part of an account carried by a session
type AccountSnapshot struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	Contact string    `json:"contact"`
}

// Snapshot drops the password hash from the account
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Address: a.Address,
		Contact: a.Contact,
	}
}
