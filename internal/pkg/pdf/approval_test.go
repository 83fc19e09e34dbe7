package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/config"
	"github.com/avopro-hr/hr-backend-go/internal/domain/document"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(reason string) document.ApprovalDocument {
	return document.ApprovalDocument{
		Request: leave.LeaveRequest{
			ID:        "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b",
			UserName:  "Jane Wanjiku",
			Category:  leave.CategoryAnnual,
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			Reason:    reason,
			Status:    request.StatusApproved,
		},
		ApprovedAt:      time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
		VerificationURL: "http://localhost:3000/verify/0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b",
	}
}

func testRenderer() *Renderer {
	r := NewRenderer(config.OrganizationConfig{
		Name:    "AVOPRO EPZ LIMITED",
		Address: "P.O. Box 12345 - 00100, Nairobi, Kenya",
		Contact: "Email: hr@avopro.com",
	})
	r.compress = false
	return r
}

func TestRender_ProducesPDFWithDetails(t *testing.T) {
	out, err := testRenderer().Render(testDocument("Family trip"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	body := string(out)
	assert.Contains(t, body, "Official Leave Approval Document")
	assert.Contains(t, body, "Jane Wanjiku")
	assert.Contains(t, body, "Jun 1, 2024 to Jun 5, 2024")
	assert.Contains(t, body, "Page 1 of 1")
}

func TestRender_LongReasonWraps(t *testing.T) {
	out, err := testRenderer().Render(testDocument(strings.Repeat("Attending a family event upcountry. ", 200)))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Page 2 of")
}
