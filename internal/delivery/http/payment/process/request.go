package process

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
)

var validate = validator.New()

type ProcessPaymentRequest struct {
	OrderUUID string `json:"order_uuid" validate:"required,uuid4"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,oneof=online card_transfer cash_on_delivery"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,e164|numeric"`
}

var paymentMethods = map[string]models.PaymentMethod{
	"online":           models.MethodOnlineGateway,
	"card_transfer":    models.MethodCardTransfer,
	"cash_on_delivery": models.MethodCashOnDelivery,
}

func (req *ProcessPaymentRequest) validateRequest() error {
	return validate.Struct(req)
}

func (req *ProcessPaymentRequest) toDTO() models.Payment {
	return models.Payment{
		OrderUUID: uuid.MustParse(req.OrderUUID),
		Amount:    req.Amount,
		Method:    paymentMethods[req.Method],
		Email:     req.Email,
		Phone:     req.Phone,
	}
}
