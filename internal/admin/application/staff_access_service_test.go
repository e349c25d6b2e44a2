package application

import (
	"context"
	"testing"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

type stubStaffRequestRepo struct {
	requests []domain.StaffRequest
	updates  map[string]string
}

func (r *stubStaffRequestRepo) Find(_ context.Context, status string) ([]domain.StaffRequest, error) {
	if status == "" {
		return r.requests, nil
	}
	found := make([]domain.StaffRequest, 0)
	for _, request := range r.requests {
		if request.Status == status {
			found = append(found, request)
		}
	}
	return found, nil
}

func (r *stubStaffRequestRepo) UpdateStatus(_ context.Context, requestID, status string) error {
	if r.updates == nil {
		r.updates = make(map[string]string)
	}
	r.updates[requestID] = status
	return nil
}

func TestDecide(t *testing.T) {
	repo := &stubStaffRequestRepo{}
	service := NewStaffAccessService(repo)

	if err := service.Decide(context.Background(), "req-1", true); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if err := service.Decide(context.Background(), "req-2", false); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if repo.updates["req-1"] != "approved" {
		t.Errorf("req-1 = %q, want approved", repo.updates["req-1"])
	}
	if repo.updates["req-2"] != "rejected" {
		t.Errorf("req-2 = %q, want rejected", repo.updates["req-2"])
	}
}

func TestListRequestsFiltersByStatus(t *testing.T) {
	repo := &stubStaffRequestRepo{requests: []domain.StaffRequest{
		{ID: "a", Status: "pending"},
		{ID: "b", Status: "approved"},
	}}
	service := NewStaffAccessService(repo)

	pending, err := service.ListRequests(context.Background(), "pending")
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "a" {
		t.Fatalf("got %+v, want only the pending request", pending)
	}

	all, err := service.ListRequests(context.Background(), "")
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d requests, want 2", len(all))
	}
}
