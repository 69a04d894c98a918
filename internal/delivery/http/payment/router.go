package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type processHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
}

type getHandler interface {
	PaymentByUUID(w http.ResponseWriter, r *http.Request)
}

func InitRoutes(process processHandler, get getHandler) http.Handler {
	mux := chi.NewRouter()

	mux.Route("/payment", func(r chi.Router) {
		r.Post("/", process.Process)
		r.Get("/{uuid}", get.PaymentByUUID)
	})

	return mux
}
