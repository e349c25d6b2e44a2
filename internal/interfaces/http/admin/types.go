package admin

import (
	"time"

	admindomain "github.com/SamR2406/edurater/internal/admin/domain"
)

type reportedReviewResponse struct {
	ReportID   string    `json:"report_id"`
	ReviewID   string    `json:"review_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ReportedAt time.Time `json:"reported_at"`

	SchoolURN     int       `json:"school_urn"`
	ReviewUserID  string    `json:"review_user_id"`
	ReviewTitle   string    `json:"review_title,omitempty"`
	ReviewBody    string    `json:"review_body,omitempty"`
	ReviewRating  *float64  `json:"review_rating,omitempty"`
	ReviewCreated time.Time `json:"review_created_at"`
}

type staffRequestResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SchoolURN   int       `json:"school_urn"`
	SchoolName  string    `json:"school_name,omitempty"`
	FullName    string    `json:"full_name"`
	Position    string    `json:"position"`
	SchoolEmail string    `json:"school_email,omitempty"`
	Evidence    string    `json:"evidence,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func buildReportedReviewResponse(report admindomain.ReportedReview) reportedReviewResponse {
	return reportedReviewResponse{
		ReportID:      report.ReportID,
		ReviewID:      report.ReviewID,
		ReporterID:    report.ReporterID,
		Reason:        report.Reason,
		Status:        report.Status,
		ReportedAt:    report.ReportedAt,
		SchoolURN:     report.SchoolURN,
		ReviewUserID:  report.ReviewUserID,
		ReviewTitle:   report.ReviewTitle,
		ReviewBody:    report.ReviewBody,
		ReviewRating:  report.ReviewRating,
		ReviewCreated: report.ReviewCreated,
	}
}

func buildStaffRequestResponse(request admindomain.StaffRequest) staffRequestResponse {
	return staffRequestResponse{
		ID:          request.ID,
		UserID:      request.UserID,
		SchoolURN:   request.SchoolURN,
		SchoolName:  request.SchoolName,
		FullName:    request.FullName,
		Position:    request.Position,
		SchoolEmail: request.SchoolEmail,
		Evidence:    request.Evidence,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
	}
}
