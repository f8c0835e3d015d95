package database

import (
	"fmt"
	"os"

	"luggage-link/logger"
	"luggage-link/models/delivery"
	"luggage-link/models/log"
	"luggage-link/models/message"
	"luggage-link/models/packages"
	"luggage-link/models/review"
	"luggage-link/models/trip"
	"luggage-link/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := RunMigrations(DB); err != nil {
		return nil, err
	}

	return DB, nil
}

// RunMigrations applies auto migration, foreign key constraints and
// indexes. Split out so the migrate tool can reuse it.
func RunMigrations(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")

	return nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	// First, migrate models without foreign key constraints in stages

	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&trip.Trip{},
		&packages.Package{},
		&message.Message{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Models with dependencies on Stage 2
	stage3Models := []interface{}{
		&delivery.Delivery{},
		&delivery.StatusEvent{},
		&review.Review{},
	}

	for _, model := range stage3Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// User indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_provider_uid ON users(provider_uid)").Error; err != nil {
		return fmt.Errorf("failed to create user provider_uid index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// Trip indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create trip user_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_departure_date ON trips(departure_date)").Error; err != nil {
		return fmt.Errorf("failed to create trip departure_date index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_destination_city ON trips(destination_city)").Error; err != nil {
		return fmt.Errorf("failed to create trip destination_city index: %w", err)
	}

	// Package indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_packages_user_id ON packages(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create package user_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status)").Error; err != nil {
		return fmt.Errorf("failed to create package status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_packages_receiver_city ON packages(receiver_city)").Error; err != nil {
		return fmt.Errorf("failed to create package receiver_city index: %w", err)
	}

	// Delivery indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_deliveries_status ON deliveries(status)").Error; err != nil {
		return fmt.Errorf("failed to create delivery status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_deliveries_traveler_id ON deliveries(traveler_id)").Error; err != nil {
		return fmt.Errorf("failed to create delivery traveler_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_deliveries_sender_id ON deliveries(sender_id)").Error; err != nil {
		return fmt.Errorf("failed to create delivery sender_id index: %w", err)
	}
	// At most one live delivery per package; cancelled rows do not count.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_deliveries_active_package ON deliveries(package_id) WHERE status <> 'cancelled'").Error; err != nil {
		return fmt.Errorf("failed to create delivery active package index: %w", err)
	}

	// Status event indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_status_events_delivery_id ON delivery_status_events(delivery_id)").Error; err != nil {
		return fmt.Errorf("failed to create status event delivery_id index: %w", err)
	}

	// Message indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_sender_receiver ON messages(sender_id, receiver_id)").Error; err != nil {
		return fmt.Errorf("failed to create message sender/receiver index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create message created_at index: %w", err)
	}

	// Review indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reviews_reviewee_id ON reviews(reviewee_id)").Error; err != nil {
		return fmt.Errorf("failed to create review reviewee_id index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_deliveries_trip",
			sql: `ALTER TABLE deliveries ADD CONSTRAINT fk_deliveries_trip
				  FOREIGN KEY (trip_id) REFERENCES trips(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_deliveries_package",
			sql: `ALTER TABLE deliveries ADD CONSTRAINT fk_deliveries_package
				  FOREIGN KEY (package_id) REFERENCES packages(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_reviews_delivery",
			sql: `ALTER TABLE reviews ADD CONSTRAINT fk_reviews_delivery
				  FOREIGN KEY (delivery_id) REFERENCES deliveries(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := db.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
