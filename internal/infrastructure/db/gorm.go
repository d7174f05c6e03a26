package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sangam-backend/internal/domain/activity"
	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/domain/meeting"
	"sangam-backend/internal/domain/member"
	"sangam-backend/internal/domain/payment"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector lets tests supply a fake dialector.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
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
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&member.Member{},
		&meeting.Meeting{},
		&meeting.Attendance{},
		&payment.Payment{},
		&loan.LoanType{},
		&loan.Loan{},
		&loan.LoanRequest{},
		&activity.Record{},
	)
}
