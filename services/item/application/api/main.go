package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/services/item/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
// All routes require an authenticated owner.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
			r.Patch("/{id}/qty", handlers.NewPatchItemQtyHandler(svcs).Execute)
		})
	})
}
