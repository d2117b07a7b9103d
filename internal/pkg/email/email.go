package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Service defines the notification emails the platform sends
type Service interface {
	SendMentorDecisionEmail(toEmail, toName string, approved bool) error
	SendBookingEmail(toEmail, toName, studentName, title, when string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// smtpService implements Service over plain SMTP. Without credentials it
// logs the mail instead of sending, which keeps development setups working.
type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new email Service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{
		config: config,
		logger: logger,
	}
}

// SendMentorDecisionEmail notifies a mentor of the moderation outcome
func (s *smtpService) SendMentorDecisionEmail(toEmail, toName string, approved bool) error {
	var subject, line string
	if approved {
		subject = "Your mentor profile was approved"
		line = "Your mentor profile was approved. Students can now find you in the directory and book sessions with you."
	} else {
		subject = "Your mentor profile was not approved"
		line = "Unfortunately your mentor profile was not approved. You can update your profile and reach out to support for another review."
	}

	body := fmt.Sprintf("Hello %s,\r\n\r\n%s\r\n\r\nThe MentorLink Team\r\n", toName, line)
	return s.send(toEmail, subject, body)
}

// SendBookingEmail notifies a mentor about a newly booked session
func (s *smtpService) SendBookingEmail(toEmail, toName, studentName, title, when string) error {
	subject := "New session booked: " + title
	body := fmt.Sprintf("Hello %s,\r\n\r\n%s booked the session %q with you for %s.\r\n\r\nThe MentorLink Team\r\n",
		toName, studentName, title, when)
	return s.send(toEmail, subject, body)
}

func (s *smtpService) send(toEmail, subject, body string) error {
	// Without credentials, log instead of sending
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured, email not sent")
		return nil
	}

	message := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.FromName, s.config.FromEmail, toEmail, subject, body)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message))
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
