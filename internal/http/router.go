package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avoronov/moneta/internal/auth"
	accountv1 "github.com/avoronov/moneta/internal/http/account"
	aiv1 "github.com/avoronov/moneta/internal/http/ai"
	analyticsv1 "github.com/avoronov/moneta/internal/http/analytics"
	authv1 "github.com/avoronov/moneta/internal/http/auth"
	bankv1 "github.com/avoronov/moneta/internal/http/bank"
	budgetv1 "github.com/avoronov/moneta/internal/http/budget"
	categoryv1 "github.com/avoronov/moneta/internal/http/category"
	paymentmethodv1 "github.com/avoronov/moneta/internal/http/paymentmethod"
	transactionv1 "github.com/avoronov/moneta/internal/http/transaction"
)

func New(
	tokens *auth.Manager,
	authV1 *authv1.Handler,
	accountV1 *accountv1.Handler,
	transactionsV1 *transactionv1.Handler,
	analyticsV1 *analyticsv1.Handler,
	budgetsV1 *budgetv1.Handler,
	categoriesV1 *categoryv1.Handler,
	paymentMethodsV1 *paymentmethodv1.Handler,
	bankV1 *bankv1.Handler,
	aiV1 *aiv1.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/account", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				accountV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/analytics/transactions", analyticsV1.Routes)

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				budgetsV1.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/payment-methods", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentMethodsV1.Routes(r)
			})

			r.Route("/bank", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				bankV1.Routes(r)
			})

			r.Route("/ai", aiV1.Routes)
		})
	})

	return router
}
