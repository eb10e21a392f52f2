package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"lashdiary/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate brings the schema up to date and installs the slot uniqueness
// guards. The partial unique indexes are the authoritative protection
// against double-booking: cancelled rows are excluded so a freed slot can
// be rebooked.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Project{},
		&domain.ShowcaseBooking{},
		&domain.Consultation{},
		&domain.OutboxEntry{},
	); err != nil {
		return err
	}

	// Partial index syntax is shared between SQLite and PostgreSQL.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
		   ON showcase_bookings (slot_date, slot_minutes)
		   WHERE status <> 'cancelled'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_consultation
		   ON consultations (slot_date, slot_minutes)
		   WHERE status <> 'cancelled'`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
