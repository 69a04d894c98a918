package process

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type paymentProcessor interface {
	Process(ctx context.Context, payment *models.Payment) (*models.Payment, error)
}

type Handler struct {
	log logger.Logger

	paymentProcessor paymentProcessor
}

func NewHandler(log logger.Logger, paymentProcessor paymentProcessor) *Handler {
	return &Handler{
		log:              log,
		paymentProcessor: paymentProcessor,
	}
}

func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.payment.process.Process"

	var request ProcessPaymentRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		h.log.Error(op, logger.String("failed to decode request", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = request.validateRequest(); err != nil {
		h.log.Error(op, logger.String("failed to validate request", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment := request.toDTO()
	processed, err := h.paymentProcessor.Process(r.Context(), &payment)
	if err != nil {
		if errors.Is(err, internalErrors.ErrPaymentAlreadyExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		// A declined charge still produced a payment record; report its
		// terminal state instead of a bare 500.
		if processed == nil {
			h.log.Error(op, logger.String("failed to process payment", err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(
		map[string]interface{}{
			"payment_uuid": processed.PaymentUUID.String(),
			"status":       int(processed.Status),
		},
	); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
