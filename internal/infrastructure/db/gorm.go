package db

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/loanevent"
	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/infrastructure/logging"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector opens, tunes the pool and pings once.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(logging.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	logging.Logger.Info("gorm: connected")
	return db, nil
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{&user.Profile{}, &asset.Asset{}, &loan.Loan{}, &loanevent.Event{}}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
