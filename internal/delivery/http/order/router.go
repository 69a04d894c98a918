package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type getHandler interface {
	OrdersByUUIDs(w http.ResponseWriter, r *http.Request)
	OrderByUUID(w http.ResponseWriter, r *http.Request)
}

type cancelHandler interface {
	Cancel(w http.ResponseWriter, r *http.Request)
}

func InitRoutes(create createHandler, get getHandler, cancel cancelHandler) http.Handler {
	mux := chi.NewRouter()

	mux.Route("/order", func(r chi.Router) {
		r.Post("/", create.Create)
		r.Get("/{uuid}", get.OrderByUUID)
		r.Post("/cancel", cancel.Cancel)
	})

	mux.Get("/orders", get.OrdersByUUIDs)

	return mux
}
