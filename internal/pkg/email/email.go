package email

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendPasswordReset(to, name, resetLink string, expiresAt time.Time) error
	SendLeaveApproval(to string, data LeaveApprovalData, document Attachment) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg              config.SMTPConfig
	organizationName string
	templates        *template.Template
	send             sendFunc
	retryDelay       time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig, organizationName string) (EmailService, error) {
	return newEmailService(cfg, organizationName, smtp.SendMail)
}

func newEmailService(cfg config.SMTPConfig, organizationName string, send sendFunc) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:              cfg,
		organizationName: organizationName,
		templates:        tmpl,
		send:             send,
		retryDelay:       time.Second,
	}, nil
}

type passwordResetEmailData struct {
	Name             string
	ResetLink        string
	ExpiresAt        string
	OrganizationName string
}

// SendPasswordReset sends a password reset email to the user
func (s *emailServiceImpl) SendPasswordReset(to, name, resetLink string, expiresAt time.Time) error {
	data := passwordResetEmailData{
		Name:             name,
		ResetLink:        resetLink,
		ExpiresAt:        expiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
		OrganizationName: s.organizationName,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_reset.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.deliver(to, fmt.Sprintf("Reset Your Password for %s HR", s.organizationName), body.String(), nil)
}

// LeaveApprovalData fills the approval notice template.
type LeaveApprovalData struct {
	EmployeeName     string
	LeaveType        string
	StartDate        string
	EndDate          string
	TotalDays        int
	VerificationURL  string
	OrganizationName string
}

// SendLeaveApproval mails the approval notice with the document attached.
func (s *emailServiceImpl) SendLeaveApproval(to string, data LeaveApprovalData, document Attachment) error {
	if data.OrganizationName == "" {
		data.OrganizationName = s.organizationName
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_approved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.deliver(to, "Your leave request has been approved", body.String(), []Attachment{document})
}

func (s *emailServiceImpl) deliver(to, subject, htmlBody string, attachments []Attachment) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	message, err := s.buildMessage(to, subject, htmlBody, attachments)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.From, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1s, 2s
		if attempt < maxRetries {
			time.Sleep(s.retryDelay * time.Duration(1<<(attempt-1)))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

// buildMessage renders RFC 5322 headers and a body. Messages with
// attachments become multipart/mixed.
func (s *emailServiceImpl) buildMessage(to, subject, htmlBody string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(htmlBody)
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, fmt.Errorf("create html part: %w", err)
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}

	for _, a := range attachments {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
		})
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if err := writeBase64Lines(part, a.Content); err != nil {
			return nil, fmt.Errorf("write attachment %s: %w", a.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBase64Lines wraps encoded output at 76 characters per line.
func writeBase64Lines(w interface{ Write([]byte) (int, error) }, content []byte) error {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
