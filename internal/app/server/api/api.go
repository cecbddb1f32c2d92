// Сервер счетов заявок на персонал.
//
// GET    /api/v1/health
// GET    /api/staff-requirements/request/{requestId}
// POST   /api/staff-requirements
// PUT    /api/staff-requirements/{id}
// DELETE /api/staff-requirements/{id}
// GET    /api/custom-line-items/request/{requestId}
// POST   /api/custom-line-items
// DELETE /api/custom-line-items/{id}
// GET    /api/requests/{id}
// PUT    /api/requests/{id}
// GET    /api/invoices/request/{requestId}
// PUT    /api/invoices/{id}
// PUT    /api/rates/{requestId}
// POST   /api/payments/checkout/{invoiceId}
// POST   /api/payments/refund/{invoiceId}

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "shiftbill/internal/app/server/api/http/health"
	invoiceAPI "shiftbill/internal/app/server/api/http/invoice"
	lineItemAPI "shiftbill/internal/app/server/api/http/lineitem"
	"shiftbill/internal/app/server/api/http/middleware"
	"shiftbill/internal/app/server/api/http/middleware/logger"
	paymentAPI "shiftbill/internal/app/server/api/http/payment"
	requestAPI "shiftbill/internal/app/server/api/http/request"
	staffAPI "shiftbill/internal/app/server/api/http/staff"
	"shiftbill/internal/domain/invoice"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Staff    *staffAPI.Handler
	LineItem *lineItemAPI.Handler
	Request  *requestAPI.Handler
	Invoice  *invoiceAPI.Handler
	Payment  *paymentAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(service invoice.Servicer, db healthAPI.Pinger, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("ShiftBill API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(service, db, log)
	h.Health.SetupRoutes(API)
	h.Staff.SetupRoutes(API)
	h.LineItem.SetupRoutes(API)
	h.Request.SetupRoutes(API)
	h.Invoice.SetupRoutes(API)
	h.Payment.SetupRoutes(API)

	return mux
}

func handlers(service invoice.Servicer, db healthAPI.Pinger, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(db, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	staffHandler := staffAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	lineItemHandler := lineItemAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	requestHandler := requestAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	invoiceHandler := invoiceAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	paymentHandler := paymentAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Staff:    staffHandler,
		LineItem: lineItemHandler,
		Request:  requestHandler,
		Invoice:  invoiceHandler,
		Payment:  paymentHandler,
	}
}

