package application

import (
	"context"
	"sort"

	"github.com/SamR2406/edurater/internal/moderation"
	"github.com/SamR2406/edurater/internal/public/domain"
)

// reviewQueryService implements ReviewQueryService.
type reviewQueryService struct {
	repo   ReviewRepository
	filter *moderation.Filter
}

// NewReviewQueryService creates a ReviewQueryService. The moderation filter
// screens listings; pass a fixture filter in tests.
func NewReviewQueryService(repo ReviewRepository, filter *moderation.Filter) ReviewQueryService {
	if filter == nil {
		filter = moderation.Default()
	}
	return &reviewQueryService{repo: repo, filter: filter}
}

// ListBySchool returns a school's active reviews newest first, with the
// aggregate score over the clean set. Reviews flagged by the moderation
// filter are dropped before scoring.
func (s *reviewQueryService) ListBySchool(ctx context.Context, schoolURN int) (SchoolReviews, error) {
	reviews, err := s.repo.FindBySchool(ctx, schoolURN)
	if err != nil {
		return SchoolReviews{}, err
	}

	clean := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if s.filter.IsClean(review.Title, review.Body) {
			clean = append(clean, review)
		}
	}

	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].CreatedAt.After(clean[j].CreatedAt)
	})

	return SchoolReviews{
		Reviews:     clean,
		SchoolScore: domain.ComputeSchoolScore(clean),
		ReviewCount: len(clean),
	}, nil
}

func (s *reviewQueryService) Detail(ctx context.Context, id string) (*domain.Review, error) {
	return s.repo.FindByID(ctx, id)
}
