package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
)

type SandboxMode string

const (
	ModeApprove SandboxMode = "approve"
	ModeDecline SandboxMode = "decline"
)

// Sandbox is the non-production gateway. It is deterministic on purpose: the
// mode decides the outcome, so integration runs are reproducible.
type Sandbox struct {
	mode SandboxMode
}

func NewSandbox(mode SandboxMode) *Sandbox {
	return &Sandbox{mode: mode}
}

func (s *Sandbox) Charge(_ context.Context, orderUUID uuid.UUID, _ uint64, _ models.PaymentMethod) (Result, error) {
	if s.mode == ModeDecline {
		return Result{
			Status:               models.PaymentStatusFailed,
			FailureReason:        "issuer declined the transaction",
			FailureReasonPersian: "خطای بانکی",
		}, nil
	}

	return Result{
		Status:        models.PaymentStatusCompleted,
		TransactionID: uuid.New().String(),
		ReferenceID:   "SBX-" + orderUUID.String()[:8],
	}, nil
}
