package models

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is bumped only for additive changes; consumers must ignore
// fields they do not know.
const SchemaVersion = 1

// OrderCheckoutEvent is published once per successful order write. It is
// self-contained: consumers never join against other services' data.
type OrderCheckoutEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventUUID     uuid.UUID `json:"event_uuid"`
	OrderUUID     uuid.UUID `json:"order_uuid"`

	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`

	Province string `json:"province,omitempty"`
	City     string `json:"city,omitempty"`
	Street   string `json:"street,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	TotalPrice    uint64        `json:"total_price"`
	CreatedAt     time.Time     `json:"created_at"`
}

func NewOrderCheckoutEvent(order *Order) *OrderCheckoutEvent {
	return &OrderCheckoutEvent{
		SchemaVersion: SchemaVersion,
		EventUUID:     uuid.New(),
		OrderUUID:     order.OrderUUID,
		FirstName:     order.FirstName,
		LastName:      order.LastName,
		EmailAddress:  order.Email,
		PhoneNumber:   order.Phone,
		Province:      order.Shipping.Province,
		City:          order.Shipping.City,
		Street:        order.Shipping.Street,
		ZipCode:       order.Shipping.ZipCode,
		PaymentMethod: order.PaymentMethod,
		TotalPrice:    order.TotalPrice,
		CreatedAt:     order.CreatedAt,
	}
}

func (e *OrderCheckoutEvent) UUID() string {
	return e.EventUUID.String()
}

// PaymentProcessedEvent is published after a payment attempt has a terminal
// status. Contact fields come from the payment record, not derived from the
// username.
type PaymentProcessedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventUUID     uuid.UUID `json:"event_uuid"`
	PaymentUUID   uuid.UUID `json:"payment_uuid"`
	OrderUUID     uuid.UUID `json:"order_uuid"`

	Amount        uint64        `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	ReferenceID   string        `json:"reference_id,omitempty"`

	FailureReason        string `json:"failure_reason,omitempty"`
	FailureReasonPersian string `json:"failure_reason_persian,omitempty"`

	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

func NewPaymentProcessedEvent(payment *Payment, reason, reasonPersian string) *PaymentProcessedEvent {
	return &PaymentProcessedEvent{
		SchemaVersion:        SchemaVersion,
		EventUUID:            uuid.New(),
		PaymentUUID:          payment.PaymentUUID,
		OrderUUID:            payment.OrderUUID,
		Amount:               payment.Amount,
		PaymentMethod:        payment.Method,
		Status:               payment.Status,
		TransactionID:        payment.TransactionID,
		ReferenceID:          payment.ReferenceID,
		FailureReason:        reason,
		FailureReasonPersian: reasonPersian,
		EmailAddress:         payment.Email,
		PhoneNumber:          payment.Phone,
		OccurredAt:           payment.UpdatedAt,
	}
}

func (e *PaymentProcessedEvent) UUID() string {
	return e.EventUUID.String()
}

// UserRegisteredEvent announces a new account.
type UserRegisteredEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventUUID     uuid.UUID `json:"event_uuid"`

	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (e *UserRegisteredEvent) UUID() string {
	return e.EventUUID.String()
}
