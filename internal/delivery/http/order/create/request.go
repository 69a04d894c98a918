package create

import (
	"errors"
	"net/mail"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
)

var (
	errEmptyItems = errors.New("items can't be empty")

	errInvalidPaymentMethod = errors.New("invalid payment method")
	errInvalidQuantity      = errors.New("invalid quantity")
	errInvalidUnitPrice     = errors.New("invalid unit price")
	errEmptyItemTitle       = errors.New("item title should not be empty")
	errEmptyFirstName       = errors.New("first_name should not be empty")
	errEmptyLastName        = errors.New("last_name should not be empty")
	errInvalidEmail         = errors.New("invalid email address")
)

type CreateOrderRequest struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Shipping      Shipping `json:"shipping"`
	Items         []Item   `json:"items"`
	PaymentMethod string   `json:"payment_method"`
}

type Shipping struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Street   string `json:"street"`
	ZipCode  string `json:"zip_code"`
}

type Item struct {
	Title     string `json:"title"`
	Quantity  uint32 `json:"quantity"`
	UnitPrice uint64 `json:"unit_price"`
}

var paymentMethods = map[string]models.PaymentMethod{
	"online":           models.MethodOnlineGateway,
	"card_transfer":    models.MethodCardTransfer,
	"cash_on_delivery": models.MethodCashOnDelivery,
}

func (req *CreateOrderRequest) validate() error {
	if req.FirstName == "" {
		return errEmptyFirstName
	}
	if req.LastName == "" {
		return errEmptyLastName
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errInvalidEmail
	}

	if _, ok := paymentMethods[req.PaymentMethod]; !ok {
		return errInvalidPaymentMethod
	}

	if len(req.Items) == 0 {
		return errEmptyItems
	}

	for _, item := range req.Items {
		if item.Title == "" {
			return errEmptyItemTitle
		}
		if item.Quantity == 0 {
			return errInvalidQuantity
		}
		if item.UnitPrice == 0 {
			return errInvalidUnitPrice
		}
	}

	return nil
}

func (req *CreateOrderRequest) toDTO() models.Order {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return models.Order{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Shipping: models.Address{
			Province: req.Shipping.Province,
			City:     req.Shipping.City,
			Street:   req.Shipping.Street,
			ZipCode:  req.Shipping.ZipCode,
		},
		Items:         items,
		PaymentMethod: paymentMethods[req.PaymentMethod],
	}
}
