package application

import (
	"context"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

// ReportRepository reads and updates review reports for moderation.
type ReportRepository interface {
	FindOpen(ctx context.Context, limit int) ([]domain.ReportedReview, error)
	UpdateStatus(ctx context.Context, reportID, status string) error
}

// ReviewRepository covers the admin-side review writes.
type ReviewRepository interface {
	SoftDelete(ctx context.Context, reviewID string) error
	Restore(ctx context.Context, reviewID string) error
	CountBySchool(ctx context.Context) ([]domain.SchoolReviewCount, error)
}

// StaffRequestRepository manages the staff-access queue.
type StaffRequestRepository interface {
	Find(ctx context.Context, status string) ([]domain.StaffRequest, error)
	UpdateStatus(ctx context.Context, requestID, status string) error
}

// AdminDirectory answers whether a user holds admin access. Membership is
// a separate collection rather than a profile role so granting or revoking
// admin does not touch user records.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// ModerationService describes the admin moderation use-cases.
type ModerationService interface {
	ListReports(ctx context.Context, limit int) ([]domain.ReportedReview, error)
	ResolveReport(ctx context.Context, reportID, status string) error
	DeleteReview(ctx context.Context, reviewID string) error
	RestoreReview(ctx context.Context, reviewID string) error
	SchoolReviewCounts(ctx context.Context) ([]domain.SchoolReviewCount, error)
}

// StaffAccessService reviews staff-access applications.
type StaffAccessService interface {
	ListRequests(ctx context.Context, status string) ([]domain.StaffRequest, error)
	Decide(ctx context.Context, requestID string, approve bool) error
}
