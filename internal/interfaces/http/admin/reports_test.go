package admin

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

type stubModerationService struct {
	gotLimits []int
}

func (s *stubModerationService) ListReports(_ context.Context, limit int) ([]domain.ReportedReview, error) {
	s.gotLimits = append(s.gotLimits, limit)
	return []domain.ReportedReview{}, nil
}

func (s *stubModerationService) ResolveReport(context.Context, string, string) error { return nil }
func (s *stubModerationService) DeleteReview(context.Context, string) error          { return nil }
func (s *stubModerationService) RestoreReview(context.Context, string) error         { return nil }
func (s *stubModerationService) SchoolReviewCounts(context.Context) ([]domain.SchoolReviewCount, error) {
	return nil, nil
}

func TestReportListLimits(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "default page size", query: "", wantLimit: defaultReportLimit},
		{name: "explicit limit passes through", query: "?limit=25", wantLimit: 25},
		{name: "oversized limit caps", query: "?limit=999", wantLimit: maxReportLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moderation := &stubModerationService{}
			handler := NewHandler(Config{
				Logger:     log.New(io.Discard, "", 0),
				Moderation: moderation,
			}).reportListHandler()

			req := httptest.NewRequest(http.MethodGet, "/admin/review-reports"+tt.query, nil)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
			}
			if len(moderation.gotLimits) != 1 || moderation.gotLimits[0] != tt.wantLimit {
				t.Errorf("service received limits %v, want [%d]", moderation.gotLimits, tt.wantLimit)
			}
		})
	}
}
