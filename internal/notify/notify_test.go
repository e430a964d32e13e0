package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_Publish(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	err := n.Publish(context.Background(), "hello owner")
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "hello owner")
	assert.Contains(t, buf.String(), `"component":"notifier"`)
}

func TestFormatRatingMessage(t *testing.T) {
	msg := FormatRatingMessage("owner-1", "study", 3, "nice")
	assert.Contains(t, msg, "`owner-1`")
	assert.Contains(t, msg, "Video: study")
	assert.Contains(t, msg, "⭐⭐⭐\n")
	assert.Contains(t, msg, "Comment: nice")

	msg = FormatRatingMessage("owner-1", "study", 2, "")
	assert.NotContains(t, msg, "Comment:")
}

func TestResendMailer_DevMode(t *testing.T) {
	var buf bytes.Buffer
	m := NewResendMailer("", "noreply@example.com", zerolog.New(&buf))

	err := m.Send(context.Background(), "a@example.com", "subject", "<p>hi</p>")
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "skipping email send")
}

func TestWelcomeEmail(t *testing.T) {
	subject, html := WelcomeEmail("a@example.com")
	assert.NotEmpty(t, subject)
	assert.Contains(t, html, "a@example.com")
}
