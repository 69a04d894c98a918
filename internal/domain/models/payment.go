package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = iota + 1
	PaymentStatusProcessing
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusCancelled
	PaymentStatusRefunded
)

func (ps PaymentStatus) Succeeded() bool {
	return ps == PaymentStatusCompleted
}

type Payment struct {
	PaymentUUID   uuid.UUID     `json:"payment_uuid"`
	OrderUUID     uuid.UUID     `json:"order_uuid"`
	Amount        uint64        `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	ReferenceID   string        `json:"reference_id,omitempty"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (p *Payment) UUID() string {
	return p.PaymentUUID.String()
}
