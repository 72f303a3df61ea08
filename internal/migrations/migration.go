package migrations

import (
	"storefront/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Comment{},
		&models.Rating{},
		&models.ChatConversation{},
	}
}

// RunMigrations brings the schema up to date
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	log.Info("Database migrations completed")
	return nil
}

// Reset drops and recreates every table. Only used by the seeding script.
func Reset(db *gorm.DB, log *zap.Logger) error {
	log.Warn("Dropping existing tables...")
	if err := db.Migrator().DropTable(reversed(Models())...); err != nil {
		log.Warn("Error dropping tables", zap.Error(err))
	}
	return RunMigrations(db, log)
}

func reversed(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, m := range in {
		out[len(in)-1-i] = m
	}
	return out
}
