package application

import (
	"context"
	"errors"
	"testing"

	"github.com/SamR2406/edurater/internal/public/domain"
)

func TestSubmitStaffRequest(t *testing.T) {
	schools := &stubSchoolRepo{schools: []domain.School{{URN: 100001, Name: "Oakfield Academy"}}}
	repo := &stubStaffRequestRepo{}
	service := NewStaffRequestService(repo, schools)

	cmd := SubmitStaffRequestCommand{
		UserID:    "user-1",
		SchoolURN: 100001,
		FullName:  "  Jan Field  ",
		Position:  "Head of Year",
	}

	request, err := service.Submit(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if request.Status != StaffRequestPending {
		t.Errorf("Status = %q, want %q", request.Status, StaffRequestPending)
	}
	if request.FullName != "Jan Field" {
		t.Errorf("FullName = %q, want trimmed", request.FullName)
	}

	if _, err := service.Submit(context.Background(), cmd); !errors.Is(err, ErrDuplicateStaffRequest) {
		t.Errorf("second Submit error = %v, want ErrDuplicateStaffRequest", err)
	}
}

func TestSubmitStaffRequestValidation(t *testing.T) {
	schools := &stubSchoolRepo{schools: []domain.School{{URN: 100001, Name: "Oakfield Academy"}}}
	service := NewStaffRequestService(&stubStaffRequestRepo{}, schools)

	cases := []struct {
		name string
		cmd  SubmitStaffRequestCommand
	}{
		{"missing school", SubmitStaffRequestCommand{UserID: "u", FullName: "A B", Position: "Teacher"}},
		{"missing name", SubmitStaffRequestCommand{UserID: "u", SchoolURN: 100001, Position: "Teacher"}},
		{"missing position", SubmitStaffRequestCommand{UserID: "u", SchoolURN: 100001, FullName: "A B"}},
		{"unknown school", SubmitStaffRequestCommand{UserID: "u", SchoolURN: 42, FullName: "A B", Position: "Teacher"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Submit(context.Background(), tc.cmd); !IsValidation(err) {
				t.Errorf("Submit error = %v, want validation error", err)
			}
		})
	}
}

func TestListOwn(t *testing.T) {
	repo := &stubStaffRequestRepo{requests: []StaffRequest{
		{ID: "r1", UserID: "user-1", SchoolURN: 100001, Status: StaffRequestPending},
		{ID: "r2", UserID: "user-2", SchoolURN: 100002, Status: StaffRequestApproved},
	}}
	service := NewStaffRequestService(repo, &stubSchoolRepo{})

	requests, err := service.ListOwn(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(requests) != 1 || requests[0].ID != "r1" {
		t.Fatalf("got %+v, want only user-1's request", requests)
	}
}
