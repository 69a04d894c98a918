package models

import (
	"encoding/json"
)

type EventType string

const (
	OrderCheckout EventType = "ORDER_CHECKOUT"
	OrderCanceled EventType = "ORDER_CANCELED"
)

type OutBoxMessage struct {
	ID        int             `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Processed bool            `json:"processed"`
}
