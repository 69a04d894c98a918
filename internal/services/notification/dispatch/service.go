package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/internal/lib/templates"
	"github.com/tavakkoli/shop_events_system/internal/senders/email"
	"github.com/tavakkoli/shop_events_system/internal/senders/sms"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"
)

type EmailSender interface {
	Send(ctx context.Context, msg email.Message) models.NotificationResult
}

type SMSSender interface {
	Send(ctx context.Context, msg sms.Message) models.NotificationResult
}

// Deduper reports whether an event/channel pair is delivered for the first
// time. A nil Deduper disables deduplication, in which case broker redelivery
// re-sends the notification.
type Deduper interface {
	FirstDelivery(ctx context.Context, eventUUID, channel string) bool
}

// Service turns consumed integration events into at most one email and one
// SMS each. The two channels are attempted independently and concurrently:
// neither a failure result nor a panic in one channel stops the other.
type Service struct {
	log       logger.Logger
	templates *templates.Registry

	emailSender EmailSender
	smsSender   SMSSender
	deduper     Deduper
}

func New(
	log logger.Logger,
	registry *templates.Registry,
	emailSender EmailSender,
	smsSender SMSSender,
	deduper Deduper,
) *Service {
	return &Service{
		log:         log,
		templates:   registry,
		emailSender: emailSender,
		smsSender:   smsSender,
		deduper:     deduper,
	}
}

func (s *Service) OrderCheckout(ctx context.Context, event *models.OrderCheckoutEvent) models.DispatchOutcome {
	const op = "services.notification.dispatch.OrderCheckout"

	orderNo := displayNumber("ORD", event.OrderUUID.String())
	customerName := strings.TrimSpace(event.FirstName + " " + event.LastName)

	data := map[string]string{
		"CustomerName":  customerName,
		"OrderNumber":   orderNo,
		"TotalPrice":    formatAmount(event.TotalPrice),
		"PaymentMethod": event.PaymentMethod.Label(),
	}

	emailMsg := &email.Message{
		To:       event.EmailAddress,
		Subject:  fmt.Sprintf("تایید سفارش %s", orderNo),
		HTMLBody: s.templates.Render(templates.OrderConfirmationEmail, data),
	}

	// No empty-phone guard here: the attempt is made and the sender reports
	// the failure.
	smsMsg := &sms.Message{
		To:   event.PhoneNumber,
		Text: s.templates.Render(templates.OrderConfirmationSMS, data),
	}

	outcome := s.dispatch(ctx, event.UUID(), emailMsg, smsMsg)

	s.logOutcome(ctx, op, orderNo, event.EmailAddress, event.PhoneNumber, outcome)

	return outcome
}

func (s *Service) PaymentProcessed(ctx context.Context, event *models.PaymentProcessedEvent) models.DispatchOutcome {
	const op = "services.notification.dispatch.PaymentProcessed"

	paymentNo := displayNumber("PAY", event.PaymentUUID.String())
	orderNo := displayNumber("ORD", event.OrderUUID.String())

	data := map[string]string{
		"PaymentNumber": paymentNo,
		"OrderNumber":   orderNo,
		"TotalPrice":    formatAmount(event.Amount),
		"PaymentMethod": event.PaymentMethod.Label(),
	}

	emailTemplate := templates.PaymentSuccessEmail
	smsTemplate := templates.PaymentSuccessSMS
	subject := fmt.Sprintf("پرداخت موفق %s", paymentNo)

	if !event.Status.Succeeded() {
		emailTemplate = templates.PaymentFailureEmail
		smsTemplate = templates.PaymentFailureSMS
		subject = fmt.Sprintf("پرداخت ناموفق %s", paymentNo)

		data["FailureReason"] = failureReason(event)
	}

	emailMsg := &email.Message{
		To:       event.EmailAddress,
		Subject:  subject,
		HTMLBody: s.templates.Render(emailTemplate, data),
	}

	smsMsg := &sms.Message{
		To:   event.PhoneNumber,
		Text: s.templates.Render(smsTemplate, data),
	}

	outcome := s.dispatch(ctx, event.UUID(), emailMsg, smsMsg)

	s.logOutcome(ctx, op, paymentNo, event.EmailAddress, event.PhoneNumber, outcome)

	return outcome
}

func (s *Service) UserRegistered(ctx context.Context, event *models.UserRegisteredEvent) models.DispatchOutcome {
	const op = "services.notification.dispatch.UserRegistered"

	customerName := strings.TrimSpace(event.FirstName + " " + event.LastName)
	if customerName == "" {
		customerName = event.Username
	}

	data := map[string]string{
		"CustomerName": customerName,
		"Username":     event.Username,
	}

	emailMsg := &email.Message{
		To:       event.EmailAddress,
		Subject:  "به فروشگاه خوش آمدید",
		HTMLBody: s.templates.Render(templates.WelcomeEmail, data),
	}

	// Registration is the one flow with an explicit phone guard: accounts may
	// be created without a phone number.
	var smsMsg *sms.Message
	if event.PhoneNumber != "" {
		smsMsg = &sms.Message{
			To:   event.PhoneNumber,
			Text: s.templates.Render(templates.WelcomeSMS, data),
		}
	}

	outcome := s.dispatch(ctx, event.UUID(), emailMsg, smsMsg)

	s.logOutcome(ctx, op, event.Username, event.EmailAddress, event.PhoneNumber, outcome)

	return outcome
}

// dispatch runs the email and SMS attempts concurrently and joins their
// results. A nil message means the channel is skipped; the deduper can skip a
// channel as well when the event was already delivered on it.
func (s *Service) dispatch(ctx context.Context, eventUUID string, emailMsg *email.Message, smsMsg *sms.Message) models.DispatchOutcome {
	const op = "services.notification.dispatch.dispatch"

	outcome := models.DispatchOutcome{EventUUID: eventUUID}

	if emailMsg != nil && !s.firstDelivery(ctx, eventUUID, channelEmail) {
		emailMsg = nil
	}
	if smsMsg != nil && !s.firstDelivery(ctx, eventUUID, channelSMS) {
		smsMsg = nil
	}

	g, gctx := errgroup.WithContext(ctx)

	if emailMsg != nil {
		g.Go(func() error {
			outcome.Email = s.attemptEmail(gctx, *emailMsg)
			return nil
		})
	}

	if smsMsg != nil {
		g.Go(func() error {
			outcome.SMS = s.attemptSMS(gctx, *smsMsg)
			return nil
		})
	}

	// The group funcs never return errors; Wait only joins the goroutines.
	_ = g.Wait()

	if emailMsg == nil && smsMsg == nil {
		s.log.InfoContext(ctx, op,
			logger.String("event_uuid", eventUUID),
			logger.String("result", "all channels skipped"),
		)
	}

	return outcome
}

func (s *Service) attemptEmail(ctx context.Context, msg email.Message) (result *models.NotificationResult) {
	defer func() {
		if r := recover(); r != nil {
			failed := models.SendFailed(
				fmt.Sprintf("email to %s panicked", msg.To),
				fmt.Sprintf("%v", r),
			)
			result = &failed
		}
	}()

	res := s.emailSender.Send(ctx, msg)
	return &res
}

func (s *Service) attemptSMS(ctx context.Context, msg sms.Message) (result *models.NotificationResult) {
	defer func() {
		if r := recover(); r != nil {
			failed := models.SendFailed(
				fmt.Sprintf("sms to %s panicked", msg.To),
				fmt.Sprintf("%v", r),
			)
			result = &failed
		}
	}()

	res := s.smsSender.Send(ctx, msg)
	return &res
}

func (s *Service) firstDelivery(ctx context.Context, eventUUID, channel string) bool {
	const op = "services.notification.dispatch.firstDelivery"

	if s.deduper == nil {
		return true
	}

	if !s.deduper.FirstDelivery(ctx, eventUUID, channel) {
		s.log.InfoContext(ctx, op,
			logger.String("event_uuid", eventUUID),
			logger.String("channel", channel),
			logger.String("result", "duplicate suppressed"),
		)
		return false
	}

	return true
}

func (s *Service) logOutcome(ctx context.Context, op, number, emailAddr, phone string, outcome models.DispatchOutcome) {
	fields := []any{
		logger.String("number", number),
		logger.String("event_uuid", outcome.EventUUID),
	}

	if outcome.Email != nil {
		fields = append(fields,
			logger.String("email_recipient", emailAddr),
			logger.Bool("email_success", outcome.Email.IsSuccess),
		)
	}
	if outcome.SMS != nil {
		fields = append(fields,
			logger.String("sms_recipient", phone),
			logger.Bool("sms_success", outcome.SMS.IsSuccess),
		)
	}

	if outcome.Failed() {
		s.log.WarnContext(ctx, op, fields...)
		return
	}

	s.log.InfoContext(ctx, op, fields...)
}

// displayNumber derives the customer-facing number shown in notifications:
// prefix plus the first 8 characters of the id, uppercased.
func displayNumber(prefix, id string) string {
	trimmed := id
	if len(trimmed) > 8 {
		trimmed = trimmed[:8]
	}

	return prefix + "-" + strings.ToUpper(trimmed)
}

// formatAmount renders 150000 as "150,000".
func formatAmount(amount uint64) string {
	digits := strconv.FormatUint(amount, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return b.String()
}

func failureReason(event *models.PaymentProcessedEvent) string {
	if event.FailureReasonPersian != "" {
		return event.FailureReasonPersian
	}
	if event.FailureReason != "" {
		return event.FailureReason
	}

	return "نامشخص"
}
