package database

import (
	"salesdash-backend/internal/config"
	"salesdash-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config, log *zap.Logger) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.SalesRecord{},
		&models.SalesPaymentMethod{},
		&models.SalesPromotion{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal("auto-migration failed", zap.Error(err))
	}

	log.Info("database ready, migrations applied")
}
