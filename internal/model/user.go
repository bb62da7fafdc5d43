package model

import "time"

// User is a registered participant who can receive tasks.
type User struct {
	ID                   string // UUID
	Username             string
	FullName             string
	CurrentCompetitionID *int64 // nil when not enrolled anywhere
	CreatedAt            time.Time
}

// Competition is a scoring period. Tasks may only be created while an
// active competition window covers the current time.
type Competition struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
}
