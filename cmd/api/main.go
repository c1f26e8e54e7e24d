package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpadp "sikopifasta-backend/internal/adapter/http"
	"sikopifasta-backend/internal/adapter/identity"
	"sikopifasta-backend/internal/adapter/middleware"
	"sikopifasta-backend/internal/adapter/repository/mysql"
	"sikopifasta-backend/internal/config"
	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/infrastructure/cache"
	"sikopifasta-backend/internal/infrastructure/db"
	"sikopifasta-backend/internal/infrastructure/logging"
	assetuc "sikopifasta-backend/internal/usecase/asset"
	"sikopifasta-backend/internal/usecase/loan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.WithError(err).Fatal("config: load failed")
	}
	logging.Init(cfg.AppName, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Logger.WithError(err).Fatal("config: invalid")
	}
	log := logging.Logger

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql: open failed")
	}
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("mysql: migrate failed")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(context.Background(), cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.WithError(err).Fatal("redis: open failed")
		}
		defer rdb.Close()
	} else {
		log.Warn("REDIS_ADDR not set: idempotency keys disabled")
	}

	users := mysql.NewUserRepository(gdb)
	if cfg.BootstrapAdminUID != "" {
		admin := &user.Profile{UID: cfg.BootstrapAdminUID, Role: user.RoleAdmin, IsActive: true, Name: "Administrator"}
		if err := users.Upsert(context.Background(), admin); err != nil {
			log.WithError(err).Fatal("bootstrap admin: upsert failed")
		}
		log.WithField("uid", admin.UID).Info("bootstrap admin ensured")
	}

	tx := mysql.NewGormUoW(gdb)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.Metrics(), requestLogger(log))

	httpadp.Register(e, httpadp.Deps{
		AppName:  cfg.AppName,
		Assets:   assetuc.NewUsecase(mysql.NewAssetRepository(gdb), tx),
		Loans:    loan.NewUsecase(mysql.NewLoanRepository(gdb), mysql.NewLoanEventRepository(gdb), tx),
		Auth:     identity.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, users),
		Redis:    rdb,
		IdempTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
	})

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("http: listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http: server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("http: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http: forced shutdown")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("http: stopped")
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
