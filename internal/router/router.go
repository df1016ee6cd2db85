package router

import (
	"net/http"

	"pourpal/internal/handler"
	"pourpal/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	itemHandler *handler.ItemHandler,
	catalogHandler *handler.CatalogHandler,
	authHandler *handler.AuthHandler,
	guard *middleware.Auth,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "OK"}`))
	})

	// Catalog browsing is public.
	r.Get("/items", itemHandler.List)
	r.Get("/items/{item_id}", itemHandler.Get)
	r.Get("/brands", catalogHandler.ListBrands)
	r.Get("/types", catalogHandler.ListTypes)
	r.Get("/countries", catalogHandler.ListCountries)

	// Cart operations identify the cart by its bearer value; no account is
	// needed.
	r.Get("/cart", cartHandler.Get)
	r.Post("/cart/{item_id}/increment", cartHandler.Increment)
	r.Post("/cart/{item_id}/decrement", cartHandler.Decrement)
	r.Put("/cart/{item_id}", cartHandler.SetQuantity)
	r.Delete("/cart/{item_id}", cartHandler.Remove)

	// Checkout is open to guests; an access token in the header attributes
	// the order.
	r.Post("/orders", orderHandler.Create)

	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/register", authHandler.Register)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireUser)
		r.Get("/orders/my", orderHandler.ListMy)
		r.Get("/auth/profile", authHandler.Profile)
	})

	// Administration.
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAdmin)
		r.Get("/orders", orderHandler.List)
		r.Post("/items", itemHandler.Create)
		r.Put("/items/{item_id}", itemHandler.Update)
		r.Delete("/items/{item_id}", itemHandler.Delete)
		r.Post("/brands", catalogHandler.CreateBrand)
		r.Put("/brands/{brand_id}", catalogHandler.UpdateBrand)
		r.Delete("/brands/{brand_id}", catalogHandler.DeleteBrand)
		r.Post("/types", catalogHandler.CreateType)
		r.Put("/types/{type_id}", catalogHandler.UpdateType)
		r.Delete("/types/{type_id}", catalogHandler.DeleteType)
		r.Post("/auth/register-admin", authHandler.RegisterAdmin)
	})

	return r
}
