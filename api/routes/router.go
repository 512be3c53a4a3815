package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avendra/hotelops-backend/api/controllers"
	"github.com/avendra/hotelops-backend/api/middleware"
	"github.com/avendra/hotelops-backend/internal/booking"
	"github.com/avendra/hotelops-backend/internal/kot"
	"github.com/avendra/hotelops-backend/internal/stock"
	"github.com/avendra/hotelops-backend/internal/vouchers"
	"github.com/avendra/hotelops-backend/pkg/config"
	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	stockService stock.Service,
	bookingService booking.Service,
	voucherService vouchers.Service,
	kotService kot.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/inventory/{itemId}", func(r chi.Router) {
			r.With(middleware.RequirePermission(middleware.ActionStockApply, logg)).
				Post("/transactions", controllers.StockApplyTransaction(stockService, cfg.Ledger, logg))
			r.With(middleware.RequirePermission(middleware.ActionStockRead, logg)).
				Get("/transactions", controllers.StockListTransactions(stockService, logg))
		})

		r.Route("/resources/{resourceId}", func(r chi.Router) {
			r.With(middleware.RequirePermission(middleware.ActionBookingWrite, logg)).
				Post("/reservations", controllers.BookingCreate(bookingService, logg))
			r.With(middleware.RequirePermission(middleware.ActionBookingRead, logg)).
				Get("/availability", controllers.BookingAvailability(bookingService, logg))
			r.With(middleware.RequirePermission(middleware.ActionBookingRead, logg)).
				Get("/calendar", controllers.BookingCalendar(bookingService, logg))
		})

		r.Route("/reservations/{reservationId}", func(r chi.Router) {
			r.Use(middleware.RequirePermission(middleware.ActionBookingWrite, logg))
			r.Patch("/window", controllers.BookingReschedule(bookingService, logg))
			r.Post("/cancel", controllers.BookingCancel(bookingService, logg))
			r.Post("/status", controllers.BookingUpdateStatus(bookingService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(middleware.ActionVoucherRedeem, logg))
			r.Post("/vouchers/{code}/redeem", controllers.VoucherRedeem(voucherService, logg))
			r.Post("/meal-vouchers/{code}/redeem", controllers.MealVoucherRedeem(voucherService, logg))
		})

		r.Route("/kot", func(r chi.Router) {
			r.With(middleware.RequirePermission(middleware.ActionKotCreate, logg)).
				Post("/orders", controllers.KotCreateOrder(kotService, logg))
			r.With(middleware.RequirePermission(middleware.ActionKotRead, logg)).
				Get("/orders", controllers.KotListOrders(kotService, logg))
			r.With(middleware.RequirePermission(middleware.ActionKotRead, logg)).
				Get("/orders/{orderId}", controllers.KotGetOrder(kotService, logg))
			r.With(middleware.RequirePermission(middleware.ActionKotTransition, logg)).
				Post("/items/{itemId}/transition", controllers.KotTransitionItem(kotService, logg))
		})
	})

	return r
}
