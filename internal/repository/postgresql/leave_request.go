package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestSelect = `
	SELECT lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		   lr.status, lr.approved_by, lr.denied_by, lr.created_at, lr.updated_at,
		   COALESCE(u.name, '')
	FROM leave_requests lr
	LEFT JOIN users u ON u.id = lr.user_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.Category,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.DeniedBy,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if newRequest.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("generate leave request id: %w", err)
		}
		newRequest.ID = id.String()
	}

	_, err := q.Exec(ctx, `
		INSERT INTO leave_requests (id, user_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		newRequest.ID,
		newRequest.UserID,
		newRequest.Category,
		newRequest.StartDate,
		newRequest.EndDate,
		newRequest.Reason,
		request.StatusPending,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}

	return r.GetByID(ctx, newRequest.ID)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`, userID, start, end).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var approvedBy, deniedBy *string
	if status == request.StatusApproved {
		approvedBy = &deciderID
	} else {
		deniedBy = &deciderID
	}

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, denied_by = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, id, status, approvedBy, deniedBy)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("update leave request status: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		if err := request.EnsurePending(current.Status); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, request.ErrAlreadyDecided
	}
	return current, nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, leaveRequestSelect+` WHERE lr.user_id = $1 ORDER BY lr.created_at DESC`, userID)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(ctx, leaveRequestSelect+` ORDER BY lr.created_at DESC`)
}

// GetApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetApproved(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1 AND lr.status = 'APPROVED'`, id))
}
