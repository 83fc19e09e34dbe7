package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const overtimeRequestSelect = `
	SELECT o.id, o.user_id, o.date, o.hours, o.reason, o.status,
		   o.approved_by, o.denied_by, o.created_at, o.updated_at,
		   COALESCE(u.name, '')
	FROM overtime_requests o
	LEFT JOIN users u ON u.id = o.user_id`

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.OvertimeRequestRepository {
	return &overtimeRequestRepositoryImpl{db: db}
}

func scanOvertimeRequest(row pgx.Row) (overtime.OvertimeRequest, error) {
	var o overtime.OvertimeRequest
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Date,
		&o.Hours,
		&o.Reason,
		&o.Status,
		&o.ApprovedBy,
		&o.DeniedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeRequestNotFound
		}
		return overtime.OvertimeRequest{}, err
	}
	return o, nil
}

func (r *overtimeRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]overtime.OvertimeRequest, 0)
	for rows.Next() {
		o, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, o)
	}
	return requests, rows.Err()
}

func (r *overtimeRequestRepositoryImpl) Create(ctx context.Context, newRequest overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	if newRequest.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return overtime.OvertimeRequest{}, fmt.Errorf("generate overtime request id: %w", err)
		}
		newRequest.ID = id.String()
	}

	_, err := q.Exec(ctx, `
		INSERT INTO overtime_requests (id, user_id, date, hours, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		newRequest.ID,
		newRequest.UserID,
		newRequest.Date,
		newRequest.Hours,
		newRequest.Reason,
		request.StatusPending,
	)
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("insert overtime request: %w", err)
	}

	return r.GetByID(ctx, newRequest.ID)
}

func (r *overtimeRequestRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanOvertimeRequest(q.QueryRow(ctx, overtimeRequestSelect+` WHERE o.id = $1`, id))
}

func (r *overtimeRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	var approvedBy, deniedBy *string
	if status == request.StatusApproved {
		approvedBy = &deciderID
	} else {
		deniedBy = &deciderID
	}

	tag, err := q.Exec(ctx, `
		UPDATE overtime_requests
		SET status = $2, approved_by = $3, denied_by = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, id, status, approvedBy, deniedBy)
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("update overtime request status: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		if err := request.EnsurePending(current.Status); err != nil {
			return overtime.OvertimeRequest{}, err
		}
		return overtime.OvertimeRequest{}, request.ErrAlreadyDecided
	}
	return current, nil
}

func (r *overtimeRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]overtime.OvertimeRequest, error) {
	return r.list(ctx, overtimeRequestSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
}

func (r *overtimeRequestRepositoryImpl) ListAll(ctx context.Context) ([]overtime.OvertimeRequest, error) {
	return r.list(ctx, overtimeRequestSelect+` ORDER BY o.created_at DESC`)
}
