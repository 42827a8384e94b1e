package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the name/email record a help request is filed under.
// It is distinct from a login account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// HelpRequest represents a pending help request
type HelpRequest struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	RequestType string    `json:"request_type"`
	RequestDate time.Time `json:"request_date"`
	Location    string    `json:"location"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestDetail is a pending request joined with its profile
type RequestDetail struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RequestType string    `json:"request_type"`
	RequestDate time.Time `json:"request_date"`
	Location    string    `json:"location"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// Neighbor is the archived copy of an accepted request.
// It keeps no reference to the request it was made from.
type Neighbor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RequestType string    `json:"request_type"`
	RequestDate time.Time `json:"request_date"`
	Location    string    `json:"location"`
	Summary     string    `json:"summary"`
	AcceptedAt  time.Time `json:"accepted_at"`
}

// NeighborFromDetail copies the archived fields of a request detail
func NeighborFromDetail(d *RequestDetail) *Neighbor {
	return &Neighbor{
		Name:        d.Name,
		Email:       d.Email,
		RequestType: d.RequestType,
		RequestDate: d.RequestDate,
		Location:    d.Location,
		Summary:     d.Summary,
	}
}
