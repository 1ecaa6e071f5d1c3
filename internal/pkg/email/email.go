package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier sends the admin notifications raised by public submissions
type Notifier interface {
	NotifyContactMessage(ctx context.Context, to string, msg ContactNotice) error
	NotifyMentorshipApplication(ctx context.Context, to string, app ApplicationNotice) error
}

// ContactNotice is the content of a contact form submission
type ContactNotice struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

// ApplicationNotice is the content of a mentorship application
type ApplicationNotice struct {
	FullName        string
	Email           string
	FieldOfInterest string
	CohortYear      int
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	SiteName  string
}

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(to, subject, htmlBody string) error
}

// NewSMTPNotifier creates a new SMTP backed Notifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		config: config,
		logger: logger,
	}
	n.send = n.sendHTMLEmail
	return n
}

func (s *SMTPNotifier) configured() bool {
	return s.config.Host != "" && s.config.FromEmail != ""
}

// NotifyContactMessage tells the site inbox about a new contact message
func (s *SMTPNotifier) NotifyContactMessage(ctx context.Context, to string, msg ContactNotice) error {
	if !s.configured() || to == "" {
		s.logger.Warn().
			Str("fromEmail", msg.Email).
			Str("subject", msg.Subject).
			Msg("SMTP not configured - contact notification not sent")
		return nil
	}

	subject := fmt.Sprintf("[%s] New contact message: %s", s.siteName(), oneLine(msg.Subject))
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New contact message</h2>
				<p><strong>From:</strong> %s &lt;%s&gt;</p>
				<p><strong>Subject:</strong> %s</p>
				<p style="white-space: pre-wrap;">%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(msg.FullName), html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject), html.EscapeString(msg.Message))

	return s.send(to, subject, body)
}

// NotifyMentorshipApplication tells the site inbox about a new application
func (s *SMTPNotifier) NotifyMentorshipApplication(ctx context.Context, to string, app ApplicationNotice) error {
	if !s.configured() || to == "" {
		s.logger.Warn().
			Str("applicantEmail", app.Email).
			Msg("SMTP not configured - application notification not sent")
		return nil
	}

	subject := fmt.Sprintf("[%s] New mentorship application from %s", s.siteName(), oneLine(app.FullName))
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New mentorship application</h2>
				<p><strong>Applicant:</strong> %s &lt;%s&gt;</p>
				<p><strong>Field of interest:</strong> %s</p>
				<p><strong>Cohort:</strong> %d</p>
				<p>Review it in the admin dashboard.</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(app.FullName), html.EscapeString(app.Email),
		html.EscapeString(app.FieldOfInterest), app.CohortYear)

	return s.send(to, subject, body)
}

func (s *SMTPNotifier) siteName() string {
	if s.config.SiteName != "" {
		return s.config.SiteName
	}
	return "ACE Medformatics"
}

// oneLine keeps user input from injecting extra headers.
func oneLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func (s *SMTPNotifier) buildMessage(toEmail, subject, htmlBody string) []byte {
	headers := []struct{ key, value string }{
		{"From", fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)},
		{"To", toEmail},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var b strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.key, h.value)
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// sendHTMLEmail sends an HTML email
func (s *SMTPNotifier) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	message := s.buildMessage(toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
