package domain

import (
	"sort"
	"time"
)

const (
	// MinSeriesDays and MaxSeriesDays bound the trailing window of the
	// daily time series; DefaultSeriesDays applies when the caller sends
	// nothing parseable.
	MinSeriesDays     = 7
	MaxSeriesDays     = 365
	DefaultSeriesDays = 90
)

// DailyBucket is one calendar day of the review time series. AvgScore is
// nil on days without a rating-bearing review; charting relies on the
// series being dense, so empty days still appear.
type DailyBucket struct {
	Date        string   `json:"date"`
	AvgScore    *float64 `json:"avg_score"`
	ReviewCount int      `json:"review_count"`
}

// SectionAverage aggregates the numeric ratings recorded under one section
// key across a school's review set.
type SectionAverage struct {
	SectionKey string  `json:"section_key"`
	AvgRating  float64 `json:"avg_rating"`
	Count      int     `json:"count"`
}

// ClampDays bounds a requested window to [MinSeriesDays, MaxSeriesDays].
// Zero or negative input clamps to the minimum.
func ClampDays(days int) int {
	if days < MinSeriesDays {
		return MinSeriesDays
	}
	if days > MaxSeriesDays {
		return MaxSeriesDays
	}
	return days
}

// ComputeSchoolScore returns the arithmetic mean of the effective ratings
// across the given reviews, or nil when no review has a usable rating.
// Callers pass active (non-deleted, clean) reviews; no rounding happens
// here, display formatting owns that.
func ComputeSchoolScore(reviews []Review) *float64 {
	sum := 0.0
	count := 0
	for _, review := range reviews {
		rating := EffectiveRating(review)
		if rating == nil {
			continue
		}
		sum += *rating
		count++
	}
	if count == 0 {
		return nil
	}
	score := sum / float64(count)
	return &score
}

// BuildDailySeries buckets reviews by UTC calendar day over a trailing
// window ending today (UTC midnight), producing exactly ClampDays(days)
// zero-filled buckets in ascending date order. Reviews without a usable
// rating or with a zero/out-of-window timestamp are skipped.
func BuildDailySeries(reviews []Review, days int) []DailyBucket {
	return BuildDailySeriesAt(reviews, days, time.Now().UTC())
}

// BuildDailySeriesAt is BuildDailySeries with an explicit reference time
// for the window end.
func BuildDailySeriesAt(reviews []Review, days int, now time.Time) []DailyBucket {
	days = ClampDays(days)

	endUTC := now.UTC().Truncate(24 * time.Hour)
	startUTC := endUTC.AddDate(0, 0, -(days - 1))
	exclusiveEnd := endUTC.AddDate(0, 0, 1)

	type accumulator struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*accumulator)

	for _, review := range reviews {
		rating := EffectiveRating(review)
		if rating == nil {
			continue
		}

		createdAt := review.CreatedAt.UTC()
		if createdAt.IsZero() || createdAt.Before(startUTC) || !createdAt.Before(exclusiveEnd) {
			continue
		}

		key := createdAt.Format("2006-01-02")
		bucket := buckets[key]
		if bucket == nil {
			bucket = &accumulator{}
			buckets[key] = bucket
		}
		bucket.sum += *rating
		bucket.count++
	}

	series := make([]DailyBucket, 0, days)
	for cursor := startUTC; !cursor.After(endUTC); cursor = cursor.AddDate(0, 0, 1) {
		key := cursor.Format("2006-01-02")
		row := DailyBucket{Date: key}
		if bucket, ok := buckets[key]; ok && bucket.count > 0 {
			avg := bucket.sum / float64(bucket.count)
			row.AvgScore = &avg
			row.ReviewCount = bucket.count
		}
		series = append(series, row)
	}
	return series
}

// BuildSectionAverages computes the mean numeric rating per section key.
// Sections without a finite numeric rating contribute nothing; section
// keys with no such ratings at all are omitted. The result is sorted
// descending by average, ties ascending by section key.
func BuildSectionAverages(sections []ReviewSection) []SectionAverage {
	type accumulator struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, section := range sections {
		rating := finiteRating(section.Rating)
		if rating == nil {
			continue
		}
		bucket := buckets[section.SectionKey]
		if bucket == nil {
			bucket = &accumulator{}
			buckets[section.SectionKey] = bucket
			order = append(order, section.SectionKey)
		}
		bucket.sum += *rating
		bucket.count++
	}

	averages := make([]SectionAverage, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		averages = append(averages, SectionAverage{
			SectionKey: key,
			AvgRating:  bucket.sum / float64(bucket.count),
			Count:      bucket.count,
		})
	}

	sort.SliceStable(averages, func(i, j int) bool {
		if averages[i].AvgRating == averages[j].AvgRating {
			return averages[i].SectionKey < averages[j].SectionKey
		}
		return averages[i].AvgRating > averages[j].AvgRating
	})
	return averages
}
