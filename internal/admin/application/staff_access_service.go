package application

import (
	"context"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

type staffAccessService struct {
	requests StaffRequestRepository
}

// NewStaffAccessService creates a StaffAccessService.
func NewStaffAccessService(requests StaffRequestRepository) StaffAccessService {
	return &staffAccessService{requests: requests}
}

func (s *staffAccessService) ListRequests(ctx context.Context, status string) ([]domain.StaffRequest, error) {
	return s.requests.Find(ctx, status)
}

// Decide approves or rejects a pending request. Approval is what unlocks
// the staff metrics endpoint for the requesting user.
func (s *staffAccessService) Decide(ctx context.Context, requestID string, approve bool) error {
	status := "rejected"
	if approve {
		status = "approved"
	}
	return s.requests.UpdateStatus(ctx, requestID, status)
}
