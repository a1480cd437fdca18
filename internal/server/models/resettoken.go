package models

import "time"

// PasswordResetToken is single-use: Used flips to true on a successful reset
// and the token is never accepted again.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	Used      bool
	Expires   time.Time
	CreatedAt time.Time
}
