package cancel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type orderCancaler interface {
	Cancel(ctx context.Context, orderUUID uuid.UUID) error
}

type Handler struct {
	log           logger.Logger
	orderCancaler orderCancaler
}

func NewHandler(log logger.Logger, orderCancaler orderCancaler) *Handler {
	return &Handler{
		log:           log,
		orderCancaler: orderCancaler,
	}
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.cancel.Cancel"

	var request CancelOrderRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		h.log.Error(op, logger.String("failed to decode request", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = request.validate(); err != nil {
		h.log.Error(op, logger.String("failed to validate request", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orderUUID := request.toServiceRepresentation()
	if err = h.orderCancaler.Cancel(r.Context(), orderUUID); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrOrderAlreadyCanceled),
			errors.Is(err, internalErrors.ErrOrderAlreadyDelivered),
			errors.Is(err, internalErrors.ErrCancelOrderByStatus):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, internalErrors.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.log.Error(op, logger.String("failed to cancel order", err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(
		map[string]string{
			"message": "order canceled",
		},
	); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
