package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/public/domain"
)

type stubReviewRepo struct {
	reviews []domain.Review
	nextID  int
}

func (r *stubReviewRepo) FindBySchool(_ context.Context, schoolURN int) ([]domain.Review, error) {
	found := make([]domain.Review, 0)
	for _, review := range r.reviews {
		if review.SchoolURN == schoolURN && review.DeletedAt == nil {
			found = append(found, review)
		}
	}
	return found, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.ID == id && review.DeletedAt == nil {
			copied := review
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.nextID++
	review.ID = fmt.Sprintf("review-%d", r.nextID)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *stubReviewRepo) Update(_ context.Context, review *domain.Review) error {
	for i := range r.reviews {
		if r.reviews[i].ID == review.ID && r.reviews[i].DeletedAt == nil {
			r.reviews[i] = *review
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *stubReviewRepo) SoftDelete(_ context.Context, id string) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id && r.reviews[i].DeletedAt == nil {
			now := time.Now().UTC()
			r.reviews[i].DeletedAt = &now
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type stubSchoolRepo struct {
	schools []domain.School
	calls   []SchoolFilter
}

func (r *stubSchoolRepo) Find(_ context.Context, filter SchoolFilter, limit int) ([]domain.School, error) {
	r.calls = append(r.calls, filter)
	found := make([]domain.School, 0)
	for _, school := range r.schools {
		if filter.URN > 0 && school.URN != filter.URN {
			continue
		}
		if filter.Postcode != "" && !strings.HasPrefix(strings.ToUpper(school.Postcode), strings.ToUpper(filter.Postcode)) {
			continue
		}
		if filter.Town != "" && !strings.Contains(strings.ToLower(school.Town), strings.ToLower(filter.Town)) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(school.Name), strings.ToLower(filter.Name)) {
			continue
		}
		found = append(found, school)
		if limit > 0 && len(found) == limit {
			break
		}
	}
	return found, nil
}

func (r *stubSchoolRepo) FindByURN(_ context.Context, urn int) (*domain.School, error) {
	for _, school := range r.schools {
		if school.URN == urn {
			copied := school
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type stubReportRepo struct {
	reports []Report
}

func (r *stubReportRepo) Create(_ context.Context, report *Report) error {
	for _, existing := range r.reports {
		if existing.ReviewID == report.ReviewID && existing.ReporterID == report.ReporterID {
			return ErrDuplicateReport
		}
	}
	report.ID = fmt.Sprintf("report-%d", len(r.reports)+1)
	r.reports = append(r.reports, *report)
	return nil
}

type stubStaffRequestRepo struct {
	requests []StaffRequest
}

func (r *stubStaffRequestRepo) FindByUser(_ context.Context, userID string) ([]StaffRequest, error) {
	found := make([]StaffRequest, 0)
	for _, request := range r.requests {
		if request.UserID == userID {
			found = append(found, request)
		}
	}
	return found, nil
}

func (r *stubStaffRequestRepo) FindByUserAndSchool(_ context.Context, userID string, schoolURN int) (*StaffRequest, error) {
	for _, request := range r.requests {
		if request.UserID == userID && request.SchoolURN == schoolURN {
			copied := request
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubStaffRequestRepo) FindApprovedByUser(_ context.Context, userID string) (*StaffRequest, error) {
	for _, request := range r.requests {
		if request.UserID == userID && request.Status == StaffRequestApproved {
			copied := request
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubStaffRequestRepo) Create(_ context.Context, request *StaffRequest) error {
	request.ID = fmt.Sprintf("request-%d", len(r.requests)+1)
	r.requests = append(r.requests, *request)
	return nil
}

type stubResolver struct {
	resolved ResolvedPostcode
	err      error
	queries  []string
}

func (r *stubResolver) Resolve(_ context.Context, postcode string) (ResolvedPostcode, error) {
	r.queries = append(r.queries, postcode)
	return r.resolved, r.err
}

func floatPtr(v float64) *float64 { return &v }
