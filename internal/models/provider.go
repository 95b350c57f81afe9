package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider is an insurance provider the backend holds a charge policy for.
// The registry is reference data seeded by cmd/seed; the backend remains the
// authority on which policy document applies to a submission.
type Provider struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	PolicyDoc string    `db:"policy_doc"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
