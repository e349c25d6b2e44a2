package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type staffRequestService struct {
	repo    StaffRequestRepository
	schools SchoolRepository
}

// NewStaffRequestService creates a StaffRequestService.
func NewStaffRequestService(repo StaffRequestRepository, schools SchoolRepository) StaffRequestService {
	return &staffRequestService{repo: repo, schools: schools}
}

func (s *staffRequestService) ListOwn(ctx context.Context, userID string) ([]StaffRequest, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Submit files a pending staff request after checking the school exists
// and the user has no request for it yet.
func (s *staffRequestService) Submit(ctx context.Context, cmd SubmitStaffRequestCommand) (*StaffRequest, error) {
	if cmd.SchoolURN <= 0 {
		return nil, ErrValidation{Reason: "missing school URN"}
	}
	fullName := strings.TrimSpace(cmd.FullName)
	if fullName == "" {
		return nil, ErrValidation{Reason: "missing full name"}
	}
	position := strings.TrimSpace(cmd.Position)
	if position == "" {
		return nil, ErrValidation{Reason: "missing position"}
	}

	if _, err := s.schools.FindByURN(ctx, cmd.SchoolURN); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrValidation{Reason: "unknown school URN"}
		}
		return nil, err
	}

	existing, err := s.repo.FindByUserAndSchool(ctx, cmd.UserID, cmd.SchoolURN)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateStaffRequest
	}

	request := &StaffRequest{
		UserID:      cmd.UserID,
		SchoolURN:   cmd.SchoolURN,
		FullName:    fullName,
		Position:    position,
		SchoolEmail: strings.TrimSpace(cmd.SchoolEmail),
		Evidence:    strings.TrimSpace(cmd.Evidence),
		Status:      StaffRequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}
