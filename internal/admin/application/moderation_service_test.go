package application

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

type stubReportRepo struct {
	open    []domain.ReportedReview
	updates map[string]string
}

func (r *stubReportRepo) FindOpen(_ context.Context, limit int) ([]domain.ReportedReview, error) {
	if limit > 0 && len(r.open) > limit {
		return r.open[:limit], nil
	}
	return r.open, nil
}

func (r *stubReportRepo) UpdateStatus(_ context.Context, reportID, status string) error {
	if r.updates == nil {
		r.updates = make(map[string]string)
	}
	r.updates[reportID] = status
	return nil
}

type stubReviewRepo struct {
	deleted  []string
	restored []string
	counts   []domain.SchoolReviewCount
}

func (r *stubReviewRepo) SoftDelete(_ context.Context, reviewID string) error {
	if reviewID == "missing" {
		return mongo.ErrNoDocuments
	}
	r.deleted = append(r.deleted, reviewID)
	return nil
}

func (r *stubReviewRepo) Restore(_ context.Context, reviewID string) error {
	r.restored = append(r.restored, reviewID)
	return nil
}

func (r *stubReviewRepo) CountBySchool(_ context.Context) ([]domain.SchoolReviewCount, error) {
	return r.counts, nil
}

func TestResolveReportStatusGuard(t *testing.T) {
	reports := &stubReportRepo{}
	service := NewModerationService(reports, &stubReviewRepo{})

	if err := service.ResolveReport(context.Background(), "rep-1", "escalated"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ResolveReport error = %v, want ErrUnknownStatus", err)
	}
	if err := service.ResolveReport(context.Background(), "rep-1", "resolved"); err != nil {
		t.Fatalf("ResolveReport: %v", err)
	}
	if err := service.ResolveReport(context.Background(), "rep-2", "dismissed"); err != nil {
		t.Fatalf("ResolveReport: %v", err)
	}
	if reports.updates["rep-1"] != "resolved" || reports.updates["rep-2"] != "dismissed" {
		t.Errorf("updates = %v", reports.updates)
	}
}

func TestDeleteAndRestoreReview(t *testing.T) {
	reviews := &stubReviewRepo{}
	service := NewModerationService(&stubReportRepo{}, reviews)

	if err := service.DeleteReview(context.Background(), "rev-1"); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if err := service.DeleteReview(context.Background(), "missing"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("DeleteReview error = %v, want ErrNoDocuments", err)
	}
	if err := service.RestoreReview(context.Background(), "rev-1"); err != nil {
		t.Fatalf("RestoreReview: %v", err)
	}
	if len(reviews.deleted) != 1 || len(reviews.restored) != 1 {
		t.Errorf("deleted=%v restored=%v", reviews.deleted, reviews.restored)
	}
}

func TestListReportsHonoursLimit(t *testing.T) {
	reports := &stubReportRepo{open: []domain.ReportedReview{
		{ReportID: "1"}, {ReportID: "2"}, {ReportID: "3"},
	}}
	service := NewModerationService(reports, &stubReviewRepo{})

	listed, err := service.ListReports(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d reports, want 2", len(listed))
	}
}
