package models

import (
	"time"
)

// Subscriber is an email address registered for new-article notifications.
// Emails are lowercase-normalized before storage; one record per email.
type Subscriber struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
