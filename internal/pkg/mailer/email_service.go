package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, name string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	enabled     bool
}

// NewEmailService builds the SMTP mailer. With no host configured it becomes
// a no-op so registration never depends on mail delivery.
func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	if host == "" {
		return &emailService{enabled: false}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		enabled:     true,
	}
}

func (s *emailService) SendWelcome(toEmail, name string) error {
	if !s.enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to HumanLenk")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to HumanLenk, %s!</h2>
			<p>Your account is ready. Start a chat, upload a document, and let the assistant summarize, edit, and clarify for you.</p>
			<p>If you didn't create this account, please ignore this email.</p>
		</div>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome mail to %s: %w", toEmail, err)
	}
	return nil
}
