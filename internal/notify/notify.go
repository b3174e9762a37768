// Package notify delivers "you are the Secret Santa for ..." messages.
package notify

import (
	"context"
	"log/slog"

	"github.com/mmynk/secretsanta/internal/export"
	"github.com/mmynk/secretsanta/internal/models"
)

// Notification is one message for one giver.
type Notification struct {
	Giver   string
	Phone   string
	Message string
}

// Sender delivers notifications.
// Implementations could send SMS, email, chat messages, etc.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Build creates one notification per pair. Phones are looked up by giver
// name; givers without a phone still get a notification with Phone empty.
func Build(pairs []models.Pair, members []models.Participant) []Notification {
	phones := make(map[string]string, len(members))
	for _, m := range members {
		phones[m.Name] = m.Phone
	}

	out := make([]Notification, len(pairs))
	for i, p := range pairs {
		out[i] = Notification{
			Giver:   p.Giver,
			Phone:   phones[p.Giver],
			Message: export.Message(p),
		}
	}
	return out
}

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	Logger *slog.Logger
}

// Send logs n at info level. The message itself is logged at debug level
// only, since it reveals the assignment.
func (s LogSender) Send(ctx context.Context, n Notification) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Notification queued", "giver", n.Giver, "has_phone", n.Phone != "")
	logger.DebugContext(ctx, "Notification body", "phone", n.Phone, "message", n.Message)
	return nil
}
