package domain

import (
	"context"
	"time"
)

// Request is a member's request for an administrative action, approved or
// rejected by someone other than the requester.
// swagger:model Request
type Request struct {
	ID               string     `json:"id"`
	RequesterID      string     `json:"requester_id"`
	RequestedCommand string     `json:"requested_command"`
	Justification    string     `json:"justification"`
	Approved         *bool      `json:"approved"`
	ApproverID       *string    `json:"approver_id"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// Completed reports whether the request has been approved or rejected.
func (r *Request) Completed() bool {
	return r.Approved != nil
}

// RequestRepository defines storage operations for approval requests.
type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context) ([]*Request, error)
	ListByRequester(ctx context.Context, userID string) ([]*Request, error)
	Complete(ctx context.Context, r *Request) error
}

// RequestService defines the approval request workflow.
type RequestService interface {
	CreateRequest(ctx context.Context, requesterID, command, justification string) (*Request, error)
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequests(ctx context.Context) ([]*Request, error)
	ListUserRequests(ctx context.Context, userID string) ([]*Request, error)
	CompleteRequest(ctx context.Context, id, approverID string, approved bool) (*Request, error)
}
