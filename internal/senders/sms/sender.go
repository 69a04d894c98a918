package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type Message struct {
	To   string
	From string
	Text string
}

type gatewayRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	To       string `json:"to"`
	From     string `json:"from"`
	Text     string `json:"text"`
	IsFlash  bool   `json:"isflash"`
}

// Sender posts to the third-party SMS gateway. Any 2xx response counts as a
// successful send; everything else (including transport errors) becomes a
// failure result.
type Sender struct {
	log    logger.Logger
	cfg    config.SMSConfig
	client *http.Client
}

func NewSender(log logger.Logger, cfg config.SMSConfig) *Sender {
	return &Sender{
		log: log,
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (s *Sender) Send(ctx context.Context, msg Message) models.NotificationResult {
	const op = "senders.sms.Send"

	from := msg.From
	if from == "" {
		from = s.cfg.From
	}

	payload := gatewayRequest{
		Username: s.cfg.Username,
		Password: s.cfg.Password,
		To:       msg.To,
		From:     from,
		Text:     msg.Text,
		IsFlash:  false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error(op, logger.String("error", err.Error()))
		return models.SendFailed(fmt.Sprintf("sms to %s failed", msg.To), err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"SendSMS", bytes.NewReader(body))
	if err != nil {
		s.log.Error(op, logger.String("error", err.Error()))
		return models.SendFailed(fmt.Sprintf("sms to %s failed", msg.To), err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error(op,
			logger.String("recipient", msg.To),
			logger.String("error", err.Error()),
		)
		return models.SendFailed(fmt.Sprintf("sms to %s failed", msg.To), err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(resp.Body)
		detail := string(respBody)
		if readErr != nil {
			detail = readErr.Error()
		}

		s.log.Error(op,
			logger.String("recipient", msg.To),
			logger.Int("status_code", resp.StatusCode),
			logger.String("response", detail),
		)
		return models.SendFailed(
			fmt.Sprintf("sms gateway returned %d for %s", resp.StatusCode, msg.To),
			detail,
		)
	}

	s.log.Info(op, logger.String("recipient", msg.To))

	return models.SendSucceeded(fmt.Sprintf("sms sent to %s", msg.To))
}
