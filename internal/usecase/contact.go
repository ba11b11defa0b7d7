package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
	"AvkuWeb/internal/service/telegram"
	"AvkuWeb/pkg/logger"
)

// ContactForwarder renders contact form submissions and hands them to a Notifier.
type ContactForwarder struct {
	notifier drepo.Notifier
	metrics  drepo.Metrics
	log      *logger.Logger
}

// NewContactForwarder creates a ContactForwarder.
func NewContactForwarder(notifier drepo.Notifier, metrics drepo.Metrics, log *logger.Logger) *ContactForwarder {
	if log == nil {
		log = logger.Nop()
	}
	return &ContactForwarder{notifier: notifier, metrics: metrics, log: log}
}

// FormatMessage renders m as Telegram Markdown. User values are kept verbatim apart from Markdown escaping.
func FormatMessage(m *models.ContactMessage) string {
	var b strings.Builder
	b.WriteString("Нове повідомлення з сайту!\n\n")
	b.WriteString("*Ім'я:* ")
	b.WriteString(telegram.EscapeMarkdownV1(m.Name))
	b.WriteString("\n*Email:* ")
	b.WriteString(telegram.EscapeMarkdownV1(m.Email))
	b.WriteString("\n*Повідомлення:*\n")
	b.WriteString(telegram.EscapeMarkdownV1(m.Message))
	return b.String()
}

// Send forwards m. Incomplete messages are rejected without contacting the notifier.
func (u *ContactForwarder) Send(ctx context.Context, m *models.ContactMessage) error {
	if m == nil || strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		u.metrics.RecordContact("invalid")
		return models.ErrMissingFields
	}

	start := time.Now()
	err := u.notifier.SendMessage(ctx, FormatMessage(m))
	u.metrics.RecordLatency("contact", time.Since(start).Seconds())
	if err != nil {
		u.metrics.RecordContact("failed")
		u.metrics.RecordError("contact")
		u.log.Error("contact forward failed", logger.Error(err))
		return fmt.Errorf("forward contact: %w", err)
	}

	u.metrics.RecordContact("sent")
	return nil
}
