package models

import "time"

// Session is server-held proof of a successful login
type Session struct {
	Token     string          `json:"token"`
	Account   AccountSnapshot `json:"account"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// IsExpired reports whether the session has expired at the given time
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
