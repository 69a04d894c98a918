package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type Message struct {
	To       string
	CC       []string
	BCC      []string
	Subject  string
	HTMLBody string
}

// Sender delivers mail over SMTP, one connection per send. The configuration
// is read-only after construction, so a single Sender is safe for concurrent
// dispatches.
type Sender struct {
	log logger.Logger
	cfg config.SMTPConfig
}

func NewSender(log logger.Logger, cfg config.SMTPConfig) *Sender {
	return &Sender{
		log: log,
		cfg: cfg,
	}
}

// Send never returns a transport error to the caller: every failure is folded
// into the NotificationResult so one broken channel cannot take down the
// other.
func (s *Sender) Send(ctx context.Context, msg Message) models.NotificationResult {
	const op = "senders.email.Send"

	if err := ctx.Err(); err != nil {
		s.log.Warn(op, logger.String("context error", err.Error()))
		return models.SendFailed(fmt.Sprintf("email to %s aborted", msg.To), err.Error())
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, s.cfg.FromName))
	m.SetHeader("To", msg.To)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	if len(msg.BCC) > 0 {
		m.SetHeader("Bcc", msg.BCC...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := dialer.DialAndSend(m); err != nil {
		s.log.Error(op,
			logger.String("recipient", msg.To),
			logger.String("error", err.Error()),
		)
		return models.SendFailed(fmt.Sprintf("email to %s failed", msg.To), err.Error())
	}

	s.log.Info(op, logger.String("recipient", msg.To), logger.String("subject", msg.Subject))

	return models.SendSucceeded(fmt.Sprintf("email sent to %s", msg.To))
}
