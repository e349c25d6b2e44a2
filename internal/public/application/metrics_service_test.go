package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/SamR2406/edurater/internal/moderation"
	"github.com/SamR2406/edurater/internal/public/domain"
)

func TestSchoolMetricsRequiresApprovedRequest(t *testing.T) {
	service := NewMetricsService(&stubReviewRepo{}, &stubSchoolRepo{}, &stubStaffRequestRepo{
		requests: []StaffRequest{
			{UserID: "staff-1", SchoolURN: 100001, Status: StaffRequestPending},
		},
	}, moderation.NewFilter(nil))

	if _, err := service.SchoolMetrics(context.Background(), "staff-1", 90); !errors.Is(err, ErrNoStaffSchool) {
		t.Errorf("SchoolMetrics error = %v, want ErrNoStaffSchool", err)
	}
	if _, err := service.SchoolMetrics(context.Background(), "stranger", 90); !errors.Is(err, ErrNoStaffSchool) {
		t.Errorf("SchoolMetrics error = %v, want ErrNoStaffSchool", err)
	}
}

func TestSchoolMetricsAggregates(t *testing.T) {
	now := time.Now().UTC()
	reviews := &stubReviewRepo{reviews: []domain.Review{
		{
			ID: "a", SchoolURN: 100001, UserID: "u1", Title: "Fine", Body: "ok",
			Rating:    floatPtr(4),
			CreatedAt: now.Add(-2 * time.Hour),
			Sections: []domain.ReviewSection{
				{SectionKey: domain.SectionTeachingLearning, Rating: floatPtr(5)},
				{SectionKey: domain.SectionFacilities, Rating: floatPtr(3)},
			},
		},
		{
			ID: "b", SchoolURN: 100001, UserID: "u2", Title: "blocked stuff", Body: "ok",
			Rating:    floatPtr(1),
			CreatedAt: now.Add(-time.Hour),
			Sections: []domain.ReviewSection{
				{SectionKey: domain.SectionTeachingLearning, Rating: floatPtr(1)},
			},
		},
	}}
	schools := &stubSchoolRepo{schools: []domain.School{{URN: 100001, Name: "Oakfield Academy"}}}
	requests := &stubStaffRequestRepo{requests: []StaffRequest{
		{UserID: "staff-1", SchoolURN: 100001, Status: StaffRequestApproved},
	}}

	service := NewMetricsService(reviews, schools, requests, moderation.NewFilter([]string{"blocked"}))

	metrics, err := service.SchoolMetrics(context.Background(), "staff-1", 3)
	if err != nil {
		t.Fatalf("SchoolMetrics: %v", err)
	}

	if metrics.School.URN != 100001 {
		t.Errorf("School.URN = %d, want 100001", metrics.School.URN)
	}
	if metrics.Days != domain.MinSeriesDays {
		t.Errorf("Days = %d, want clamp to %d", metrics.Days, domain.MinSeriesDays)
	}
	if len(metrics.DailySeries) != domain.MinSeriesDays {
		t.Fatalf("series length = %d, want %d", len(metrics.DailySeries), domain.MinSeriesDays)
	}

	total := 0
	for _, bucket := range metrics.DailySeries {
		total += bucket.ReviewCount
	}
	if total != 1 {
		t.Errorf("total review count across series = %d, want 1 (flagged review excluded)", total)
	}

	// The flagged review's section rating must not leak into the averages.
	for _, avg := range metrics.SectionAverages {
		if avg.SectionKey == domain.SectionTeachingLearning {
			if avg.Count != 1 {
				t.Errorf("teaching count = %d, want 1", avg.Count)
			}
			if math.Abs(avg.AvgRating-5) > 1e-9 {
				t.Errorf("teaching avg = %v, want 5", avg.AvgRating)
			}
		}
	}
	if len(metrics.SectionAverages) != 2 {
		t.Errorf("got %d section averages, want 2", len(metrics.SectionAverages))
	}
}
