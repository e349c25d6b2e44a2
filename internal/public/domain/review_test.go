package domain

import (
	"math"
	"testing"
)

func TestEffectiveRatingPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		review Review
		want   *float64
	}{
		{
			name: "computed wins over raw and sections",
			review: Review{
				RatingComputed: floatPtr(4.5),
				Rating:         floatPtr(2),
				Sections:       []ReviewSection{{SectionKey: "teaching_learning", Rating: floatPtr(1)}},
			},
			want: floatPtr(4.5),
		},
		{
			name: "raw wins over sections",
			review: Review{
				Rating:   floatPtr(2),
				Sections: []ReviewSection{{SectionKey: "teaching_learning", Rating: floatPtr(5)}},
			},
			want: floatPtr(2),
		},
		{
			name: "derived from section mean",
			review: Review{
				Sections: []ReviewSection{
					{SectionKey: "teaching_learning", Rating: floatPtr(4)},
					{SectionKey: "send_support", Rating: floatPtr(3)},
					{SectionKey: "extra_curricular", Comment: "unrated"},
				},
			},
			want: floatPtr(3.5),
		},
		{
			name:   "nothing usable",
			review: Review{Title: "t", Body: "b"},
			want:   nil,
		},
		{
			name: "non-finite computed falls through to raw",
			review: Review{
				RatingComputed: floatPtr(math.NaN()),
				Rating:         floatPtr(3),
			},
			want: floatPtr(3),
		},
		{
			name: "non-finite section ratings are skipped",
			review: Review{
				Sections: []ReviewSection{
					{SectionKey: "teaching_learning", Rating: floatPtr(math.Inf(1))},
					{SectionKey: "send_support", Rating: floatPtr(4)},
				},
			},
			want: floatPtr(4),
		},
		{
			name: "all non-finite yields nil",
			review: Review{
				RatingComputed: floatPtr(math.Inf(-1)),
				Rating:         floatPtr(math.NaN()),
				Sections:       []ReviewSection{{SectionKey: "teaching_learning", Rating: floatPtr(math.NaN())}},
			},
			want: nil,
		},
		{
			name: "sections without ratings yield nil",
			review: Review{
				Sections: []ReviewSection{{SectionKey: "teaching_learning", Comment: "words only"}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveRating(tt.review)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("EffectiveRating() = %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("EffectiveRating() = %.4f, want %.4f", *got, *tt.want)
			}
		})
	}
}

func TestEffectiveRatingDoesNotAliasInput(t *testing.T) {
	original := 4.0
	review := Review{RatingComputed: &original}

	got := EffectiveRating(review)
	if got == nil {
		t.Fatal("expected a rating")
	}
	*got = 1.0
	if original != 4.0 {
		t.Errorf("mutating the result changed the review: %v", original)
	}
}
