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

var errInvalidPaymentUUID = errors.New("invalid payment_uuid")

type paymentGetter interface {
	Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error)
}

type Handler struct {
	log logger.Logger

	paymentGetter paymentGetter
}

func NewHandler(log logger.Logger, paymentGetter paymentGetter) *Handler {
	return &Handler{
		log:           log,
		paymentGetter: paymentGetter,
	}
}

func (h *Handler) PaymentByUUID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.payment.get.PaymentByUUID"

	paymentUUID, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		h.log.Error(op, logger.String("invalid payment_uuid", err.Error()))
		http.Error(w, errInvalidPaymentUUID.Error(), http.StatusBadRequest)
		return
	}

	payment, err := h.paymentGetter.Payment(r.Context(), paymentUUID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrPaymentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		h.log.Error(op, logger.String("failed to get payment", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(payment); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
