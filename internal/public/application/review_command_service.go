package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SamR2406/edurater/internal/moderation"
	"github.com/SamR2406/edurater/internal/public/domain"
)

// ErrValidation wraps user-facing submission problems; handlers map it to
// a 400.
type ErrValidation struct {
	Reason string
}

func (e ErrValidation) Error() string { return e.Reason }

type reviewCommandService struct {
	reviews ReviewRepository
	reports ReportRepository
	filter  *moderation.Filter
}

// NewReviewCommandService creates a ReviewCommandService.
func NewReviewCommandService(reviews ReviewRepository, reports ReportRepository, filter *moderation.Filter) ReviewCommandService {
	if filter == nil {
		filter = moderation.Default()
	}
	return &reviewCommandService{reviews: reviews, reports: reports, filter: filter}
}

// Submit validates and stores a new review. rating_computed is derived
// from the section means here so read paths can trust it.
func (s *reviewCommandService) Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	if cmd.SchoolURN <= 0 {
		return nil, ErrValidation{Reason: "missing school URN"}
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return nil, ErrValidation{Reason: "missing user"}
	}
	if !s.filter.IsClean(cmd.Title, cmd.Body) {
		return nil, ErrValidation{Reason: "review contains blocked language"}
	}
	if cmd.Rating != nil {
		if err := validateRating(*cmd.Rating); err != nil {
			return nil, err
		}
	}

	sections, err := normalizeSections(cmd.Sections)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		SchoolURN:      cmd.SchoolURN,
		UserID:         cmd.UserID,
		Title:          strings.TrimSpace(cmd.Title),
		Body:           strings.TrimSpace(cmd.Body),
		Rating:         cmd.Rating,
		RatingComputed: sectionMean(sections),
		Sections:       sections,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return review, s.reviews.Create(ctx, review)
}

// Update applies an owner-only edit. A non-nil Sections in the command
// replaces the stored section set wholesale and recomputes the rating.
func (s *reviewCommandService) Update(ctx context.Context, id, userID string, cmd UpdateReviewCommand) (*domain.Review, error) {
	existing, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	if cmd.Title != nil {
		existing.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Body != nil {
		existing.Body = strings.TrimSpace(*cmd.Body)
	}
	if cmd.Rating != nil {
		if err := validateRating(*cmd.Rating); err != nil {
			return nil, err
		}
		existing.Rating = cmd.Rating
	}
	if cmd.Sections != nil {
		sections, err := normalizeSections(cmd.Sections)
		if err != nil {
			return nil, err
		}
		existing.Sections = sections
		existing.RatingComputed = sectionMean(sections)
	}

	if !s.filter.IsClean(existing.Title, existing.Body) {
		return nil, ErrValidation{Reason: "review contains blocked language"}
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := s.reviews.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete soft-deletes a review. Admins may delete any review; regular
// users only their own.
func (s *reviewCommandService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	existing, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && existing.UserID != userID {
		return ErrNotOwner
	}
	return s.reviews.SoftDelete(ctx, id)
}

// Report files a complaint against a review. Each reporter gets one report
// per review.
func (s *reviewCommandService) Report(ctx context.Context, reviewID, reporterID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrValidation{Reason: "missing reason for report"}
	}

	if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
		return err
	}

	report := &Report{
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     ReportOpen,
		CreatedAt:  time.Now().UTC(),
	}
	return s.reports.Create(ctx, report)
}

func validateRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return ErrValidation{Reason: "rating must be between 1 and 5"}
	}
	if rating*2 != float64(int(rating*2)) {
		return ErrValidation{Reason: "rating must be a whole or half step"}
	}
	return nil
}

func normalizeSections(commands []SectionCommand) ([]domain.ReviewSection, error) {
	sections := make([]domain.ReviewSection, 0, len(commands))
	rated := 0
	commented := 0
	seen := make(map[string]struct{}, len(commands))

	for _, cmd := range commands {
		key := strings.TrimSpace(cmd.SectionKey)
		if key == "" {
			continue
		}
		if !domain.KnownSectionKey(key) {
			return nil, ErrValidation{Reason: fmt.Sprintf("unknown section %q", key)}
		}
		if _, dup := seen[key]; dup {
			return nil, ErrValidation{Reason: fmt.Sprintf("duplicate section %q", key)}
		}
		seen[key] = struct{}{}

		if cmd.Rating != nil {
			if err := validateRating(*cmd.Rating); err != nil {
				return nil, err
			}
			rated++
		}
		comment := strings.TrimSpace(cmd.Comment)
		if comment != "" {
			commented++
		}
		sections = append(sections, domain.ReviewSection{
			SectionKey: key,
			Rating:     cmd.Rating,
			Comment:    comment,
		})
	}

	if rated == 0 {
		return nil, ErrValidation{Reason: "at least one section must carry a rating"}
	}
	if commented == 0 {
		return nil, ErrValidation{Reason: "at least one section must carry a comment"}
	}
	return sections, nil
}

func sectionMean(sections []domain.ReviewSection) *float64 {
	sum := 0.0
	count := 0
	for _, section := range sections {
		if section.Rating == nil {
			continue
		}
		sum += *section.Rating
		count++
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

// IsValidation reports whether err is a user-input problem.
func IsValidation(err error) bool {
	var v ErrValidation
	return errors.As(err, &v)
}
