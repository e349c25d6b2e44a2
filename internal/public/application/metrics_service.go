package application

import (
	"context"
	"errors"

	"github.com/SamR2406/edurater/internal/moderation"
	"github.com/SamR2406/edurater/internal/public/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

type metricsService struct {
	reviews       ReviewRepository
	schools       SchoolRepository
	staffRequests StaffRequestRepository
	filter        *moderation.Filter
}

// NewMetricsService creates a MetricsService.
func NewMetricsService(reviews ReviewRepository, schools SchoolRepository, staffRequests StaffRequestRepository, filter *moderation.Filter) MetricsService {
	if filter == nil {
		filter = moderation.Default()
	}
	return &metricsService{
		reviews:       reviews,
		schools:       schools,
		staffRequests: staffRequests,
		filter:        filter,
	}
}

// SchoolMetrics resolves the caller's approved staff school and aggregates
// its active reviews into the daily series and section comparison. The
// daily series covers the clamped trailing window; section averages span
// the school's whole review set.
func (s *metricsService) SchoolMetrics(ctx context.Context, userID string, days int) (*SchoolMetrics, error) {
	request, err := s.staffRequests.FindApprovedByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoStaffSchool
		}
		return nil, err
	}

	school, err := s.schools.FindByURN(ctx, request.SchoolURN)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoStaffSchool
		}
		return nil, err
	}

	reviews, err := s.reviews.FindBySchool(ctx, school.URN)
	if err != nil {
		return nil, err
	}

	clean := make([]domain.Review, 0, len(reviews))
	sections := make([]domain.ReviewSection, 0, len(reviews)*4)
	for _, review := range reviews {
		if !s.filter.IsClean(review.Title, review.Body) {
			continue
		}
		clean = append(clean, review)
		sections = append(sections, review.Sections...)
	}

	days = domain.ClampDays(days)
	return &SchoolMetrics{
		School:          *school,
		Days:            days,
		DailySeries:     domain.BuildDailySeries(clean, days),
		SectionAverages: domain.BuildSectionAverages(sections),
	}, nil
}
