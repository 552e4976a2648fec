// Package managers handles the sending of account emails using the
// Mailgun service and the Hermes package for email formatting.
package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"
)

// MailMgr is the outbound mail dispatcher. Every method delivers a
// templated mail carrying a one-time code; delivery is best-effort and
// failures never roll back the operation that triggered them.
type MailMgr interface {
	SendVerificationMail(email, username, code string) error
	SendPasswordResetMail(email, username, code string) error
	SendEmailChangeMail(email, username, code string) error
}

// MailManager is a concrete implementation of the MailMgr interface
// backed by Mailgun, with bodies generated by Hermes.
type MailManager struct {
	Hermes  *hermes.Hermes
	Mailgun *mailgun.MailgunImpl
}

var from = "Account Server <no-reply@mail.account-server.dev>"
var environment string

// SendVerificationMail mails the signup verification code to a freshly
// registered user.
func (mm *MailManager) SendVerificationMail(email, username, code string) error {
	body := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"Welcome! We're very excited to have you on board.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "To verify your email address, enter the following code:",
					InviteCode:   code,
				},
			},
		},
	}

	return mm.send(email, "Verify your email address", body)
}

// SendPasswordResetMail mails a password-reset code. The code is valid
// for ten minutes.
func (mm *MailManager) SendPasswordResetMail(email, username, code string) error {
	body := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"You requested a password reset.",
				"If this wasn't you, you can safely ignore this mail.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Enter the following code within the next 10 minutes to choose a new password:",
					InviteCode:   code,
				},
			},
		},
	}

	return mm.send(email, "Reset your password", body)
}

// SendEmailChangeMail mails the confirmation code for a pending email
// change to the new address.
func (mm *MailManager) SendEmailChangeMail(email, username, code string) error {
	body := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"You requested to change the email address of your account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Enter the following code within the next 10 minutes to confirm the new address:",
					InviteCode:   code,
				},
			},
		},
	}

	return mm.send(email, "Confirm your new email address", body)
}

func (mm *MailManager) send(email, subject string, body hermes.Email) error {
	if environment != "production" {
		log.Info("Skipping outbound mail in development mode")
		return nil
	}

	emailBody, err := mm.Hermes.GenerateHTML(body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(5*time.Second))
	defer cancel()

	message := mm.Mailgun.NewMessage(from, subject, "", email)
	message.SetHtml(emailBody)
	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning("Error sending mail: " + err.Error())
		return err
	}
	log.Debugf("Mail %q sent to %s", subject, email)

	return nil
}

// NewMailManager initializes a MailManager with configured Mailgun and
// Hermes settings. Outside of production the manager formats but never
// sends mail.
func NewMailManager() MailMgr {
	log.Info("Initializing mail manager")
	environment = os.Getenv("ENVIRONMENT")

	if environment != "production" {
		log.Info("Running in development mode, email will not be sent to users")
	}

	domain := os.Getenv("MAIL_DOMAIN")
	if domain == "" {
		domain = "mail.account-server.dev"
	}
	mailgunInstance := mailgun.NewMailgun(domain, os.Getenv("MAILGUN_API_KEY"))
	mailgunInstance.SetAPIBase(mailgun.APIBaseEU)

	return &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name:        "Account Server",
				Link:        fmt.Sprintf("https://%s/", domain),
				Copyright:   "© Account Server",
				TroubleText: "If you’re having trouble with the button '{ACTION}', copy and paste the URL below into your web browser.",
			},
		},
		Mailgun: mailgunInstance,
	}
}
