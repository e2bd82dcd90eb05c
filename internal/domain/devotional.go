package domain

import "time"

// Devotional is a daily devotional entry, optionally tied to a sermon.
type Devotional struct {
	ID          string
	Title       string
	Date        time.Time
	Passage     string
	Leader      string
	SermonID    *string
	CreatedByID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
