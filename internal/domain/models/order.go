package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is anything the async producer can key and publish.
type Event interface {
	UUID() string
}

type OrderStatus int

const (
	UndefinedStatus OrderStatus = iota
	OrderStatusCreated
	OrderStatusPaid
	OrderStatusDelivered
	OrderStatusCanceled
)

type PaymentMethod uint8

const (
	UndefinedMethod PaymentMethod = iota
	MethodOnlineGateway
	MethodCardTransfer
	MethodCashOnDelivery
)

// Label returns the customer-facing Persian name of the payment method.
func (pm PaymentMethod) Label() string {
	switch pm {
	case MethodOnlineGateway:
		return "پرداخت آنلاین"
	case MethodCardTransfer:
		return "کارت به کارت"
	case MethodCashOnDelivery:
		return "پرداخت در محل"
	default:
		return "نامشخص"
	}
}

type Address struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Street   string `json:"street"`
	ZipCode  string `json:"zip_code"`
}

type Order struct {
	OrderUUID     uuid.UUID     `json:"order_uuid"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Shipping      Address       `json:"shipping"`
	Items         []OrderItem   `json:"items"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TotalPrice    uint64        `json:"total_price"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderItem struct {
	UUID      uuid.UUID `json:"item_uuid"`
	OrderUUID uuid.UUID `json:"order_uuid"`
	Title     string    `json:"title"`
	Quantity  uint32    `json:"quantity"`
	UnitPrice uint64    `json:"unit_price"`
}

func (o *Order) UUID() string {
	return o.OrderUUID.String()
}
