package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/document"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/email"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/storage"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"golang.org/x/sync/singleflight"
)

const (
	documentFolder = "leave-documents"
	pdfContentType = "application/pdf"

	dispatchTimeout = 2 * time.Minute
)

type documentServiceImpl struct {
	renderer    document.Renderer
	storage     storage.FileStorage
	mailer      email.EmailService
	frontendURL string

	renders singleflight.Group
	wg      sync.WaitGroup
	now     func() time.Time
}

func NewDocumentService(renderer document.Renderer, fileStorage storage.FileStorage, mailer email.EmailService, frontendURL string) document.Service {
	return &documentServiceImpl{
		renderer:    renderer,
		storage:     fileStorage,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

func documentPath(leaveID string) string {
	return documentFolder + "/" + leaveID + ".pdf"
}

func (s *documentServiceImpl) verificationURL(leaveID string) string {
	return s.frontendURL + "/verify/" + leaveID
}

// DispatchApproval runs detached from the caller's cancellation so that a
// finished HTTP request does not abort delivery.
func (s *documentServiceImpl) DispatchApproval(ctx context.Context, approved leave.LeaveRequest, ownerEmail string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()

		content, err := s.ensureStored(ctx, approved)
		if err != nil {
			slog.Error("failed to prepare approval document", "leave_request_id", approved.ID, "error", err)
			return
		}

		if ownerEmail == "" {
			return
		}
		err = s.mailer.SendLeaveApproval(ownerEmail, email.LeaveApprovalData{
			EmployeeName:    approved.UserName,
			LeaveType:       approved.Category.DisplayName(),
			StartDate:       approved.StartDate.Format(validator.DateLayout),
			EndDate:         approved.EndDate.Format(validator.DateLayout),
			TotalDays:       approved.Days(),
			VerificationURL: s.verificationURL(approved.ID),
		}, email.Attachment{
			Filename:    "leave-approval-" + approved.ID + ".pdf",
			ContentType: pdfContentType,
			Content:     content,
		})
		if err != nil {
			slog.Error("failed to send approval email", "leave_request_id", approved.ID, "error", err)
			return
		}
		slog.Info("approval document sent", "leave_request_id", approved.ID)
	}()
}

func (s *documentServiceImpl) Open(ctx context.Context, approved leave.LeaveRequest) ([]byte, error) {
	if approved.Status != request.StatusApproved {
		return nil, leave.ErrLeaveNotApproved
	}
	return s.ensureStored(ctx, approved)
}

func (s *documentServiceImpl) Wait() {
	s.wg.Wait()
}

// ensureStored returns the stored PDF, rendering and uploading it first when
// absent. Concurrent calls for one request share a single render.
func (s *documentServiceImpl) ensureStored(ctx context.Context, approved leave.LeaveRequest) ([]byte, error) {
	path := documentPath(approved.ID)

	v, err, _ := s.renders.Do(path, func() (interface{}, error) {
		rc, err := s.storage.Download(ctx, path)
		if err == nil {
			defer rc.Close()
			return io.ReadAll(rc)
		}
		if !errors.Is(err, storage.ErrFileNotFound) {
			return nil, fmt.Errorf("failed to read stored document: %w", err)
		}

		approvedAt := approved.UpdatedAt
		if approvedAt.IsZero() {
			approvedAt = s.now()
		}
		content, err := s.renderer.Render(document.ApprovalDocument{
			Request:         approved,
			ApprovedAt:      approvedAt,
			VerificationURL: s.verificationURL(approved.ID),
		})
		if err != nil {
			return nil, err
		}

		if _, err := s.storage.Upload(ctx, bytes.NewReader(content), path, pdfContentType); err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
