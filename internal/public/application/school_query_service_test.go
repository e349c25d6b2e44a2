package application

import (
	"context"
	"errors"
	"testing"

	"github.com/SamR2406/edurater/internal/public/domain"
)

func TestSearchUsesResolvedPostcode(t *testing.T) {
	repo := &stubSchoolRepo{schools: []domain.School{
		{URN: 1, Name: "Riverside Primary", Postcode: "SW1A 1AA"},
	}}
	resolver := &stubResolver{resolved: ResolvedPostcode{Postcode: "SW1A 1AA", Outcode: "SW1A"}}

	service := NewSchoolQueryService(repo, resolver)
	schools, err := service.Search(context.Background(), SchoolFilter{Postcode: "sw1a1aa"}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("got %d schools, want 1", len(schools))
	}
	if len(repo.calls) != 1 || repo.calls[0].Postcode != "SW1A 1AA" {
		t.Errorf("repo queried with %+v, want the resolved postcode", repo.calls)
	}
}

func TestSearchFallsBackToOutcode(t *testing.T) {
	repo := &stubSchoolRepo{schools: []domain.School{
		{URN: 2, Name: "Manor Park Academy", Postcode: "M1 4BT"},
	}}
	resolver := &stubResolver{resolved: ResolvedPostcode{Outcode: "M1"}}

	service := NewSchoolQueryService(repo, resolver)
	schools, err := service.Search(context.Background(), SchoolFilter{Postcode: "M1"}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("got %d schools, want 1", len(schools))
	}
}

func TestSearchRetriesRawWhenResolvedFindsNothing(t *testing.T) {
	// The school data set can lag the postcode file; the raw input still
	// has to match.
	repo := &stubSchoolRepo{schools: []domain.School{
		{URN: 3, Name: "Hollybank High School", Postcode: "ZZ9 9ZZ"},
	}}
	resolver := &stubResolver{resolved: ResolvedPostcode{Postcode: "AB1 2CD"}}

	service := NewSchoolQueryService(repo, resolver)
	schools, err := service.Search(context.Background(), SchoolFilter{Postcode: "ZZ9 9ZZ"}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("got %d schools, want 1 via the raw fallback", len(schools))
	}
	if len(repo.calls) != 2 {
		t.Fatalf("repo queried %d times, want 2", len(repo.calls))
	}
	if repo.calls[1].Postcode != "ZZ9 9ZZ" {
		t.Errorf("fallback postcode = %q, want the raw input", repo.calls[1].Postcode)
	}
}

func TestSearchResolverFailureIsNotFatal(t *testing.T) {
	repo := &stubSchoolRepo{schools: []domain.School{
		{URN: 4, Name: "The Grove School", Postcode: "NR1 1AA"},
	}}
	resolver := &stubResolver{err: errors.New("lookup down")}

	service := NewSchoolQueryService(repo, resolver)
	schools, err := service.Search(context.Background(), SchoolFilter{Postcode: "NR1 1AA"}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("got %d schools, want 1 via raw matching", len(schools))
	}
}

func TestSearchWithoutResolver(t *testing.T) {
	repo := &stubSchoolRepo{schools: []domain.School{
		{URN: 5, Name: "Kingsmead Academy", Town: "York"},
	}}

	service := NewSchoolQueryService(repo, nil)
	schools, err := service.Search(context.Background(), SchoolFilter{Town: "york"}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("got %d schools, want 1", len(schools))
	}
}
