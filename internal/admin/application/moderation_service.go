package application

import (
	"context"
	"errors"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

// ErrUnknownStatus marks an unsupported report status transition.
var ErrUnknownStatus = errors.New("unknown report status")

type moderationService struct {
	reports ReportRepository
	reviews ReviewRepository
}

// NewModerationService creates a ModerationService.
func NewModerationService(reports ReportRepository, reviews ReviewRepository) ModerationService {
	return &moderationService{reports: reports, reviews: reviews}
}

func (s *moderationService) ListReports(ctx context.Context, limit int) ([]domain.ReportedReview, error) {
	return s.reports.FindOpen(ctx, limit)
}

func (s *moderationService) ResolveReport(ctx context.Context, reportID, status string) error {
	switch status {
	case "resolved", "dismissed":
	default:
		return ErrUnknownStatus
	}
	return s.reports.UpdateStatus(ctx, reportID, status)
}

func (s *moderationService) DeleteReview(ctx context.Context, reviewID string) error {
	return s.reviews.SoftDelete(ctx, reviewID)
}

func (s *moderationService) RestoreReview(ctx context.Context, reviewID string) error {
	return s.reviews.Restore(ctx, reviewID)
}

func (s *moderationService) SchoolReviewCounts(ctx context.Context) ([]domain.SchoolReviewCount, error) {
	return s.reviews.CountBySchool(ctx)
}
