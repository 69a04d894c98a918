package process

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/internal/gateway"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (uuid.UUID, error)
	Update(ctx context.Context, payment *models.Payment) error
	Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error)
}

// PaymentProcessingService charges through the gateway, persists the result
// and publishes a PaymentProcessedEvent on the events channel. Event
// publication is fire-and-forget: the HTTP caller's response never depends on
// the broker.
type PaymentProcessingService struct {
	log        logger.Logger
	repository paymentRepository
	gateway    gateway.Gateway
	eventsChan chan<- models.Event
}

func New(
	log logger.Logger,
	repository paymentRepository,
	gw gateway.Gateway,
	eventsChan chan<- models.Event,
) *PaymentProcessingService {
	return &PaymentProcessingService{
		log:        log,
		repository: repository,
		gateway:    gw,
		eventsChan: eventsChan,
	}
}

func (ps *PaymentProcessingService) Process(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	const op = "services.payment.process.Process"

	now := time.Now()
	payment.Status = models.PaymentStatusPending
	payment.CreatedAt = now
	payment.UpdatedAt = now

	paymentUUID, err := ps.repository.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payment.PaymentUUID = paymentUUID

	result, err := ps.gateway.Charge(ctx, payment.OrderUUID, payment.Amount, payment.Method)
	if err != nil {
		// Gateway unreachable: the payment stays terminal-failed and the
		// caller learns about it, but the record and the event still exist.
		result = gateway.Result{
			Status:               models.PaymentStatusFailed,
			FailureReason:        err.Error(),
			FailureReasonPersian: "خطا در ارتباط با درگاه پرداخت",
		}
	}

	payment.Status = result.Status
	payment.TransactionID = result.TransactionID
	payment.ReferenceID = result.ReferenceID
	payment.UpdatedAt = time.Now()

	if updateErr := ps.repository.Update(ctx, payment); updateErr != nil {
		return nil, fmt.Errorf("%s: %w", op, updateErr)
	}

	ps.publish(ctx, models.NewPaymentProcessedEvent(payment, result.FailureReason, result.FailureReasonPersian))

	ps.log.InfoContext(ctx, op,
		logger.String("payment_uuid", payment.PaymentUUID.String()),
		logger.String("order_uuid", payment.OrderUUID.String()),
		logger.Int("status", int(payment.Status)),
	)

	if err != nil {
		return payment, fmt.Errorf("%s: gateway charge: %w", op, err)
	}

	return payment, nil
}

func (ps *PaymentProcessingService) Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error) {
	const op = "services.payment.process.Payment"

	payment, err := ps.repository.Payment(ctx, paymentUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payment, nil
}

func (ps *PaymentProcessingService) publish(ctx context.Context, event models.Event) {
	const op = "services.payment.process.publish"

	select {
	case ps.eventsChan <- event:
	case <-ctx.Done():
		ps.log.Warn(op,
			logger.String("event_uuid", event.UUID()),
			logger.String("error", "context done before event was queued"),
		)
	}
}
