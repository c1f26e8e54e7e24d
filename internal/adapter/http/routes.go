package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"sikopifasta-backend/internal/adapter/middleware"
	"sikopifasta-backend/internal/infrastructure/metrics"
	assetuc "sikopifasta-backend/internal/usecase/asset"
	"sikopifasta-backend/internal/usecase/loan"
)

type Deps struct {
	AppName  string
	Assets   *assetuc.Usecase
	Loans    *loan.Usecase
	Auth     middleware.Authenticator
	Redis    *redis.Client // nil disables idempotency
	IdempTTL time.Duration
}

// Register mounts every route on e.
func Register(e *echo.Echo, d Deps) {
	h := NewHandler(d.AppName)
	ah := NewAssetHandler(d.Assets)
	lh := NewLoanHandler(d.Loans)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1", middleware.Auth(d.Auth), middleware.Idempotency(d.Redis, d.IdempTTL))
	admin := middleware.RequireAdmin()

	api.GET("/assets", ah.List)
	api.GET("/assets/available", ah.ListAvailable)
	api.GET("/assets/:asset_id", ah.Get)
	api.POST("/assets", ah.Create, admin)
	api.PUT("/assets", ah.Upsert, admin)
	api.PATCH("/assets/:asset_id", ah.Update, admin)
	api.DELETE("/assets/:asset_id", ah.Delete, admin)
	api.POST("/assets/:asset_id/restore", ah.Restore, admin)
	api.GET("/assets/:asset_id/loans", lh.ByAsset, admin)

	api.POST("/loans", lh.Request)
	api.GET("/loans", lh.List, admin)
	api.GET("/loans/mine", lh.Mine)
	api.GET("/loans/:loan_id", lh.Get)
	api.GET("/loans/:loan_id/events", lh.Events)
	api.POST("/loans/:loan_id/approve", lh.Approve, admin)
	api.POST("/loans/:loan_id/reject", lh.Reject, admin)
	api.POST("/loans/:loan_id/borrow", lh.Borrow, admin)
	api.POST("/loans/:loan_id/return", lh.Return)
}
