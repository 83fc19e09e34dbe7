// Package pdf renders the official leave approval document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/config"
	"github.com/avopro-hr/hr-backend-go/internal/domain/document"
	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	displayDate = "Jan 2, 2006"
	margin      = 15.0
	qrImageName = "verification-qr"
	qrSizePx    = 256
	qrSizeMM    = 40.0

	pageBreakMargin = 20.0
)

// Renderer draws approval documents with the organisation's letterhead.
type Renderer struct {
	org      config.OrganizationConfig
	compress bool
}

func NewRenderer(org config.OrganizationConfig) *Renderer {
	return &Renderer{org: org, compress: true}
}

var _ document.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(doc document.ApprovalDocument) ([]byte, error) {
	qr, err := qrcode.Encode(doc.VerificationURL, qrcode.Medium, qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("encode verification qr: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(doc.ApprovedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Official Leave Approval Document", true)
	pdf.SetAuthor(r.org.Name, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, pageBreakMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetHeaderFunc(func() {
		r.drawWatermark(pdf, pageWidth, pageHeight)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5,
			fmt.Sprintf("This is a system-generated document. Scan the QR code for verification. Page %d of {nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Letterhead
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(margin, 12)
	pdf.CellFormat(pageWidth-2*margin, 6, tr(r.org.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(pageWidth-2*margin, 5, tr(r.org.Address), "", 1, "C", false, 0, "")
	pdf.CellFormat(pageWidth-2*margin, 5, tr(r.org.Contact), "", 1, "C", false, 0, "")

	pdf.RegisterImageOptionsReader(qrImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions(qrImageName, pageWidth-margin-qrSizeMM, 10, qrSizeMM, qrSizeMM, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, doc.VerificationURL)

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, 55)
	pdf.CellFormat(pageWidth-2*margin, 8, "Official Leave Approval Document", "", 1, "C", false, 0, "")
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, 65, pageWidth-margin, 65)

	r.drawDetails(pdf, tr, doc, pageWidth)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrRenderFailed, err)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrRenderFailed, err)
	}
	return out.Bytes(), nil
}

func (r *Renderer) drawWatermark(pdf *fpdf.Fpdf, pageWidth, pageHeight float64) {
	pdf.SetFont("Helvetica", "B", 50)
	pdf.SetTextColor(200, 200, 200)
	pdf.SetAlpha(0.15, "Normal")

	cx, cy := pageWidth/2, pageHeight/2
	textWidth := pdf.GetStringWidth(r.org.Name)
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, cy)
	pdf.Text(cx-textWidth/2, cy, r.org.Name)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(40, 40, 40)
}

func (r *Renderer) drawDetails(pdf *fpdf.Fpdf, tr func(string) string, doc document.ApprovalDocument, pageWidth float64) {
	_, pageHeight := pdf.GetPageSize()
	req := doc.Request
	ownerName := req.UserName
	if ownerName == "" {
		ownerName = "N/A"
	}

	rows := [][2]string{
		{"Request ID", req.ID},
		{"Employee Name", ownerName},
		{"Leave Type", string(req.Category)},
		{"Date Range", fmt.Sprintf("%s to %s", req.StartDate.Format(displayDate), req.EndDate.Format(displayDate))},
		{"Total Days", fmt.Sprintf("%d", req.Days())},
		{"Reason Provided", req.Reason},
		{"Status", string(req.Status)},
		{"Date Approved", doc.ApprovedAt.Format(displayDate)},
	}

	labelWidth := 50.0
	valueWidth := pageWidth - 2*margin - labelWidth
	lineHeight := 7.0

	pdf.SetXY(margin, 75)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(22, 160, 133)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(labelWidth, lineHeight, "Field", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, lineHeight, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(242, 242, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		value := tr(row[1])
		lines := pdf.SplitText(value, valueWidth-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		height := lineHeight * float64(len(lines))

		// A value too long for the rest of the page spills over; only its
		// first line gets a label cell.
		labelHeight := height
		if pdf.GetY()+height > pageHeight-pageBreakMargin {
			labelHeight = lineHeight
		}
		pdf.CellFormat(labelWidth, labelHeight, row[0], "1", 0, "L", true, 0, "")
		pdf.MultiCell(valueWidth, lineHeight, value, "1", "L", true)
	}
}
