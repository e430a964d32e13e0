package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// ResendMailer delivers email through Resend. Without an API key it runs in
// dev mode and only logs what it would have sent.
type ResendMailer struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

func NewResendMailer(apiKey, from string, logger zerolog.Logger) *ResendMailer {
	m := &ResendMailer{
		from:   from,
		logger: logger.With().Str("component", "mailer").Logger(),
	}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

func (m *ResendMailer) Send(_ context.Context, to, subject, html string) error {
	if m.client == nil {
		m.logger.Warn().Str("to", to).Str("subject", subject).Msg("RESEND_API_KEY not set, skipping email send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	m.logger.Info().Str("email_id", sent.Id).Str("to", to).Msg("email sent")
	return nil
}

// WelcomeEmail renders the message sent to freshly registered users.
func WelcomeEmail(email string) (subject, html string) {
	subject = "Your Video Hub account"
	html = fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #333;">Welcome to Video Hub!</h2>
			<p>An account has been created for <strong>%s</strong>.</p>
			<p>You can now sign in, book video slots and rate the slots of others.</p>
			<p style="color: #aaa; font-size: 12px;">
				If you did not expect this, you can safely ignore this email.
			</p>
		</div>
	`, email)
	return subject, html
}
