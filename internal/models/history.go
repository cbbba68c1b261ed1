package models

import "time"

// SavedNegotiation is a negotiation id remembered on this machine.
type SavedNegotiation struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
