package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	clientHandler "github.com/webitplay/depobill/internal/http/client"
	invoiceHandler "github.com/webitplay/depobill/internal/http/invoice"
	reportHandler "github.com/webitplay/depobill/internal/http/report"
)

func New(
	invoicesV1 *invoiceHandler.Handler,
	clientsV1 *clientHandler.Handler,
	reportsV1 *reportHandler.Handler,
	apiSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(RequireToken(apiSecret))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)
	})

	return router
}
