package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier defines the interface for publishing messages to a notification channel.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// LogNotifier implements Notifier by writing messages to the service log.
// Replace this with a chat integration for production use.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Publish(_ context.Context, message string) error {
	n.logger.Info().Str("message", message).Msg("notification published")
	return nil
}

// FormatRatingMessage renders the owner notification for a new rating.
func FormatRatingMessage(ownerID, title string, score int, text string) string {
	var b strings.Builder
	b.WriteString("*New Rating Received*\n")
	b.WriteString("Owner: `" + ownerID + "`\n")
	b.WriteString("Video: " + title + "\n")
	b.WriteString("Rating: " + strings.Repeat("⭐", max(score, 0)) + "\n")
	if text != "" {
		b.WriteString("Comment: " + text)
	}
	return b.String()
}
