package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"shopmanager/internal/database"
	pauth "shopmanager/internal/platform/auth"
)

type Email struct {
	Subject      string
	From         string
	To           []string
	Template     string
	TemplateVars map[string]any
}

type Mailgun struct {
	domain  string
	apiKey  string
	apiBase string
}

var _ pauth.Notifier = (*Mailgun)(nil)

func NewMailer(domain, apiKey, apiBase string) *Mailgun {
	return &Mailgun{
		domain:  domain,
		apiKey:  apiKey,
		apiBase: apiBase,
	}
}

func (m *Mailgun) SendTemplatedMail(e *Email) error {
	mg := mailgun.NewMailgun(m.domain, m.apiKey)
	mg.SetAPIBase(m.apiBase)

	message := mailgun.NewMessage(e.From, e.Subject, "", e.To...)
	message.SetTemplate(e.Template)

	if e.TemplateVars != nil {
		for k, v := range e.TemplateVars {
			message.AddTemplateVariable(k, v)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, _, err := mg.Send(ctx, message)
	if err != nil {
		return err
	}

	return nil
}

// SendPasswordReset satisfies the auth flow's notifier contract.
func (m *Mailgun) SendPasswordReset(user *database.User, token string) error {
	message := Email{
		Subject:  "ShopManager - Password reset",
		From:     fmt.Sprintf("ShopManager <no-reply@%s>", m.domain),
		To:       []string{user.Email},
		Template: "reset-password",
		TemplateVars: map[string]any{
			"recipientName": fmt.Sprintf("%s %s", user.FirstName, user.LastName),
			"resetToken":    token,
		},
	}

	return m.SendTemplatedMail(&message)
}
