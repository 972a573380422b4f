package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubscheduler/internal/domain"
)

type requestService struct {
	requestRepo domain.RequestRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewRequestService creates a RequestService.
func NewRequestService(requestRepo domain.RequestRepository, logger *slog.Logger) domain.RequestService {
	return &requestService{requestRepo: requestRepo, logger: logger, now: time.Now}
}

func (s *requestService) CreateRequest(ctx context.Context, requesterID, command, justification string) (*domain.Request, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, domain.ErrInvalidInput
	}
	r := &domain.Request{
		RequesterID:      requesterID,
		RequestedCommand: command,
		Justification:    strings.TrimSpace(justification),
		CreatedAt:        s.now(),
	}
	if err := s.requestRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return r, nil
}

func (s *requestService) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return r, nil
}

func (s *requestService) ListRequests(ctx context.Context) ([]*domain.Request, error) {
	list, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return list, nil
}

func (s *requestService) ListUserRequests(ctx context.Context, userID string) ([]*domain.Request, error) {
	list, err := s.requestRepo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user requests: %w", err)
	}
	return list, nil
}

// CompleteRequest approves or rejects a pending request. Requesters cannot
// decide their own requests.
func (s *requestService) CompleteRequest(ctx context.Context, id, approverID string, approved bool) (*domain.Request, error) {
	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Completed() {
		return nil, domain.ErrRequestAlreadyCompleted
	}
	if r.RequesterID == approverID {
		return nil, domain.ErrSelfApprovalNotAllowed
	}
	now := s.now()
	r.Approved = &approved
	r.ApproverID = &approverID
	r.CompletedAt = &now
	if err := s.requestRepo.Complete(ctx, r); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRequestAlreadyCompleted
		}
		return nil, fmt.Errorf("complete request: %w", err)
	}
	s.logger.InfoContext(ctx, "request completed", "request_id", id, "approver_id", approverID, "approved", approved)
	return r, nil
}
