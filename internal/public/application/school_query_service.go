package application

import (
	"context"
	"strings"

	"github.com/SamR2406/edurater/internal/public/domain"
)

type schoolQueryService struct {
	repo     SchoolRepository
	resolver PostcodeResolver
}

// NewSchoolQueryService creates a SchoolQueryService. resolver may be nil,
// in which case postcode queries match raw text only.
func NewSchoolQueryService(repo SchoolRepository, resolver PostcodeResolver) SchoolQueryService {
	return &schoolQueryService{repo: repo, resolver: resolver}
}

// Search runs the school query, resolving postcode input through the
// lookup service first. The cascade: full-postcode resolution, then the
// outcode, then the raw string as a prefix. Resolver failures are not
// fatal; the raw input still matches.
func (s *schoolQueryService) Search(ctx context.Context, filter SchoolFilter, limit int) ([]domain.School, error) {
	rawPostcode := strings.TrimSpace(filter.Postcode)
	filter.Postcode = rawPostcode

	if rawPostcode != "" && s.resolver != nil {
		if resolved, err := s.resolver.Resolve(ctx, rawPostcode); err == nil {
			if resolved.Postcode != "" {
				filter.Postcode = resolved.Postcode
			} else if resolved.Outcode != "" {
				filter.Postcode = resolved.Outcode
			}
		}
	}

	schools, err := s.repo.Find(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	// When a resolved postcode finds nothing (the school data set can lag
	// the postcode file), retry with the raw input.
	if len(schools) == 0 && rawPostcode != "" && filter.Postcode != rawPostcode {
		fallback := filter
		fallback.Postcode = rawPostcode
		return s.repo.Find(ctx, fallback, limit)
	}
	return schools, nil
}

func (s *schoolQueryService) Detail(ctx context.Context, urn int) (*domain.School, error) {
	return s.repo.FindByURN(ctx, urn)
}
