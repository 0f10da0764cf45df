package types

import "time"

// User represents a registered library user.
type User struct {
	ID               string    // Caller-assigned, unique among users.
	Name             string
	Email            string
	Phone            string
	Address          string    // Free text; comma-separated sub-fields by convention.
	BirthDate        time.Time // Zero when unknown.
	RegistrationDate time.Time // Defaults to creation time.
	Active           bool
}
