package domain

import "time"

// Sermon is a single preached message record.
type Sermon struct {
	ID          string
	Date        time.Time
	Time        *string // service time as "HH:MM", optional
	Speaker     string
	Passage     string // scripture reference like "1 Peter 2:1-10"
	Title       string
	Description string
	CreatedByID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
