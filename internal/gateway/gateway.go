package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
)

// Result is the gateway's verdict on one charge attempt.
type Result struct {
	Status               models.PaymentStatus
	TransactionID        string
	ReferenceID          string
	FailureReason        string
	FailureReasonPersian string
}

// Gateway charges a customer for an order. Implementations return an error
// only for infrastructure problems; a declined charge is a Result with a
// failed status.
type Gateway interface {
	Charge(ctx context.Context, orderUUID uuid.UUID, amount uint64, method models.PaymentMethod) (Result, error)
}
