// Package email delivers transactional mail over SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// WelcomeSender delivers the post-registration welcome email.
type WelcomeSender interface {
	SendWelcomeEmail(to string) error
}

// Sender sends transactional email through an SMTP relay.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender creates a Sender for the given SMTP relay.
func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Ensure Sender implements WelcomeSender
var _ WelcomeSender = (*Sender)(nil)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<html>
  <body>
    <p>Welcome!</p>
    <p>Your account for {{.Email}} has been created successfully.</p>
  </body>
</html>`))

// SendWelcomeEmail implements WelcomeSender.
func (s *Sender) SendWelcomeEmail(to string) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, map[string]string{"Email": to}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome!")
	m.SetBody("text/html", body.String())

	return s.dialer.DialAndSend(m)
}
