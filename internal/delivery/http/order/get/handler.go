package get

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type orderGetter interface {
	OrdersByUUIDs(ctx context.Context, UUIDs []uuid.UUID) ([]models.Order, error)
	OrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	orderGetter orderGetter
}

func NewHandler(log logger.Logger, orderGetter orderGetter) *Handler {
	return &Handler{
		log:         log,
		orderGetter: orderGetter,
	}
}

func (h *Handler) OrdersByUUIDs(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.get.OrdersByUUIDs"

	var request OrdersByUUIDsRequest

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

	uuids := request.toServiceRepresentation()
	orders, err := h.orderGetter.OrdersByUUIDs(r.Context(), uuids)
	if err != nil {
		h.log.Error(op, logger.String("failed to get orders", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(
		map[string]interface{}{
			"orders": orders,
		},
	); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) OrderByUUID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.get.OrderByUUID"

	orderUUID, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		h.log.Error(op, logger.String("invalid order_uuid", err.Error()))
		http.Error(w, errInvalidOrderUUID.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.orderGetter.OrderByUUID(r.Context(), orderUUID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		h.log.Error(op, logger.String("failed to get order", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(order); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
