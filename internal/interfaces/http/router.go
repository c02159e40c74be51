package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices  InvoiceService
	Payments  PaymentService
	Parties   PartyService
	Items     ItemService
	Dashboard DashboardService
	Pager     Pager            // nil usa los límites por defecto de appstate
	Metrics   *metrics.Metrics // nil desactiva /metrics y el middleware
	Logger    *logger.Logger   // nil desactiva el access log
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	if deps.Logger != nil {
		app.Use(AccessLog(deps.Logger.Component("http")))
	}
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Pager)
	invoices.Post("/calculate", invoiceHandler.Calculate)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Payments
	payments := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Payments, deps.Pager)
	payments.Post("/", paymentHandler.Record)
	payments.Get("/", paymentHandler.List)

	// Parties
	parties := api.Group("/parties")
	partyHandler := NewPartyHandler(deps.Parties, deps.Pager)
	parties.Post("/", partyHandler.Create)
	parties.Get("/", partyHandler.List)
	parties.Get("/:id", partyHandler.GetByID)

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.Items, deps.Pager)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
}
