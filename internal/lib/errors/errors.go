package errors

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAlreadyCanceled  = errors.New("order already canceled")
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
	ErrCancelOrderByStatus   = errors.New("order cannot be cancelled at this stage")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment for this order already exists")

	ErrTemplateNotFound = errors.New("template not found")
)
