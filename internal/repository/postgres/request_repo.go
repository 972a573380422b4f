package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const requestColumns = `id, requester_id, requested_command, justification, approved, approver_id, created_at, completed_at`

var requestViolations = violations{
	"requests_requester_id_fkey": domain.ErrUserNotFound,
	"requests_approver_id_fkey":  domain.ErrUserNotFound,
}

type requestRepository struct {
	DB *sql.DB
}

func NewRequestRepository(db *sql.DB) domain.RequestRepository {
	return &requestRepository{DB: db}
}

func scanRequest(s scanner) (*domain.Request, error) {
	req := &domain.Request{}
	var approved sql.NullBool
	var approverID sql.NullString
	var completedAt sql.NullTime
	err := s.Scan(&req.ID, &req.RequesterID, &req.RequestedCommand, &req.Justification,
		&approved, &approverID, &req.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if approved.Valid {
		req.Approved = &approved.Bool
	}
	req.ApproverID = stringPtr(approverID)
	req.CompletedAt = timePtr(completedAt)
	return req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (requester_id, requested_command, justification, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, req.RequesterID, req.RequestedCommand, req.Justification, req.CreatedAt).Scan(&req.ID)
	return mapWriteError(err, requestViolations)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	return queryOne(ctx, r.DB, scanRequest, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
}

func (r *requestRepository) List(ctx context.Context) ([]*domain.Request, error) {
	return queryAll(ctx, r.DB, scanRequest, `SELECT `+requestColumns+` FROM requests ORDER BY created_at DESC`)
}

func (r *requestRepository) ListByRequester(ctx context.Context, userID string) ([]*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = $1 ORDER BY created_at DESC`
	return queryAll(ctx, r.DB, scanRequest, query, userID)
}

// Complete records the decision only while the request is still open, so two
// concurrent approvers cannot both complete it. A completed request reports ErrNotFound.
func (r *requestRepository) Complete(ctx context.Context, req *domain.Request) error {
	query := `
		UPDATE requests SET approved = $2, approver_id = $3, completed_at = $4
		WHERE id = $1 AND approved IS NULL
	`
	err := execOne(ctx, r.DB, query, req.ID, req.Approved, nullString(req.ApproverID), req.CompletedAt)
	return mapWriteError(err, requestViolations)
}
