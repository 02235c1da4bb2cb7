package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/football-clinic/docs" // swagger spec
	"github.com/Dosada05/football-clinic/handlers"
	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/middleware"
	"github.com/Dosada05/football-clinic/services"
)

type Options struct {
	AllowedOrigins []string
	Tokens         *services.CheckoutTokens
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
}

func SetupRoutes(
	r chi.Router,
	opts Options,
	siteHandler *handlers.SiteHandler,
	registrationHandler *handlers.RegistrationHandler,
	paymentHandler *handlers.PaymentHandler,
	receiptHandler *handlers.ReceiptHandler,
	adminHandler *handlers.AdminHandler,
	auditHandler *handlers.AuditHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestMetrics(opts.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handlers.SubmissionKeyHeader, "X-Checkout-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Страницы
	r.Get("/", siteHandler.Landing)
	r.Get("/football-clinic", siteHandler.Landing)
	r.Get("/checkout", paymentHandler.CheckoutPage)
	r.Get("/payment-success", receiptHandler.Page)
	r.Get("/payment-success/receipt", receiptHandler.DownloadReceipt)
	r.Post("/payment-success/receipt/archive", receiptHandler.ArchiveReceipt)
	r.Get("/admin", adminHandler.Page)

	r.Get("/ws/admin", webSocketHandler.ServeAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/clinic", siteHandler.Clinic)
		r.Post("/registrations", registrationHandler.Submit)

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.CheckoutToken(opts.Tokens))
			r.Post("/intent", paymentHandler.CreateIntent)
			r.Post("/confirmation", paymentHandler.Confirm)
		})

		r.Route("/admin/registrations", func(r chi.Router) {
			r.Get("/", adminHandler.ListRegistrations)
			r.Get("/export.csv", adminHandler.ExportCSV)
			r.Post("/export", adminHandler.ArchiveExport)
			r.Put("/{id}/status", adminHandler.UpdateStatus)
			r.Delete("/{id}", adminHandler.DeleteRegistration)
		})
		r.Get("/admin/payment-audit", auditHandler.ListPaymentAudit)
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Неизвестные пути ведут на главную страницу.
	r.NotFound(http.HandlerFunc(siteHandler.Landing))
}
