package dto

import "time"

// CreateSermonRequest payload for recording a sermon. Date is "YYYY-MM-DD",
// Time is an optional "HH:MM".
type CreateSermonRequest struct {
	Date        string  `json:"date"`
	Time        *string `json:"time"`
	Speaker     string  `json:"speaker"`
	Passage     string  `json:"passage"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// UpdateSermonRequest payload for editing a sermon; nil fields are kept.
type UpdateSermonRequest struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Speaker     *string `json:"speaker"`
	Passage     *string `json:"passage"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// SermonResponse describes a sermon.
type SermonResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Time        *string   `json:"time"`
	Speaker     string    `json:"speaker"`
	Passage     string    `json:"passage"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssociateSeriesRequest links an existing series to a sermon.
type AssociateSeriesRequest struct {
	SeriesID string `json:"series_id"`
}

// CreateSeriesRequest payload for recording a series.
type CreateSeriesRequest struct {
	Title       string   `json:"title"`
	FromDate    string   `json:"from_date"`
	ToDate      string   `json:"to_date"`
	Passage     string   `json:"passage"`
	Description string   `json:"description"`
	SermonIDs   []string `json:"sermon_ids"`
}

// UpdateSeriesRequest payload for editing a series; nil fields are kept.
type UpdateSeriesRequest struct {
	Title       *string `json:"title"`
	FromDate    *string `json:"from_date"`
	ToDate      *string `json:"to_date"`
	Passage     *string `json:"passage"`
	Description *string `json:"description"`
}

// SeriesResponse describes a series with its member sermons.
type SeriesResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	FromDate    string           `json:"from_date"`
	ToDate      string           `json:"to_date"`
	Passage     string           `json:"passage"`
	Description string           `json:"description"`
	Sermons     []SermonResponse `json:"sermons"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SeriesSermonsRequest carries sermon ids to attach or detach.
type SeriesSermonsRequest struct {
	SermonIDs []string `json:"sermon_ids"`
}

// SeriesSermonsResponse splits a series' sermons into current members and
// sermons still available to attach.
type SeriesSermonsResponse struct {
	Sermons   []SermonResponse `json:"sermons"`
	Available []SermonResponse `json:"available_sermons"`
}

// CreateDevotionalRequest payload for recording a devotional.
type CreateDevotionalRequest struct {
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Passage  string  `json:"passage"`
	Leader   string  `json:"leader"`
	SermonID *string `json:"sermon_id"`
}

// UpdateDevotionalRequest payload for editing a devotional; nil fields are
// kept, an empty sermon id clears the reference.
type UpdateDevotionalRequest struct {
	Title    *string `json:"title"`
	Date     *string `json:"date"`
	Passage  *string `json:"passage"`
	Leader   *string `json:"leader"`
	SermonID *string `json:"sermon_id"`
}

// DevotionalResponse describes a devotional.
type DevotionalResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Passage   string    `json:"passage"`
	Leader    string    `json:"leader"`
	SermonID  *string   `json:"sermon_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountResponse standard response for count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}
