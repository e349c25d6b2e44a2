package domain

import "time"

// ReportedReview is one open report joined with the review it targets.
// Reports whose review has been soft-deleted are not surfaced.
type ReportedReview struct {
	ReportID   string
	ReviewID   string
	ReporterID string
	Reason     string
	Status     string
	ReportedAt time.Time

	SchoolURN     int
	ReviewUserID  string
	ReviewTitle   string
	ReviewBody    string
	ReviewRating  *float64
	ReviewCreated time.Time
}

// SchoolReviewCount pairs a school with its active review count.
type SchoolReviewCount struct {
	SchoolURN   int    `json:"school_urn"`
	SchoolName  string `json:"school_name"`
	ReviewCount int    `json:"review_count"`
}

// StaffRequest is the admin view of a staff-access application.
type StaffRequest struct {
	ID          string
	UserID      string
	SchoolURN   int
	SchoolName  string
	FullName    string
	Position    string
	SchoolEmail string
	Evidence    string
	Status      string
	CreatedAt   time.Time
}
