package domain

import "time"

// Series groups sermons under a theme over a date range.
type Series struct {
	ID          string
	Title       string
	FromDate    time.Time
	ToDate      time.Time
	Passage     string
	Description string
	CreatedByID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Sermons holds the member sermons when the caller asked for them.
	Sermons []Sermon
}
