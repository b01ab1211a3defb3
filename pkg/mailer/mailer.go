package mailer

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email through SendGrid. When no API key is
// configured it logs instead of sending, so local development needs no account.
type Mailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func New(apiKey, fromEmail, fromName string) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Enabled reports whether a real SendGrid client is configured.
func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

// Send delivers a single plain-text/HTML email.
func (m *Mailer) Send(to, toName, subject, plainText, htmlContent string) error {
	if !m.Enabled() {
		log.Printf("mailer disabled, skipping email to %s (%s)", to, subject)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// SendVerification emails the account-verification link for the given token.
func (m *Mailer) SendVerification(to, toName, frontendURL, tokenValue string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", frontendURL, tokenValue)
	plain := "Welcome to Sportlink! Verify your account: " + link
	html := fmt.Sprintf(`<p>Welcome to Sportlink!</p><p><a href="%s">Verify your account</a></p>`, link)
	return m.Send(to, toName, "Verify your Sportlink account", plain, html)
}
