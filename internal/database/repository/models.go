package repository

import (
	"database/sql"
	"time"
)

// Envelope is a named budget amount. Amount is NULL until the user enters a
// value; Format overrides the configured default when non-empty.
type Envelope struct {
	ID        string
	Name      string
	Amount    sql.NullFloat64
	Format    string
	SortOrder int
	UpdatedAt time.Time
}
