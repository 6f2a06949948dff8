package booking

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// bookingRow mirrors the bookings table owned by the slot-booking
// application. Only the columns the matcher reads are mapped.
type bookingRow struct {
	VehicleNumber string `gorm:"column:vehicle_number"`
	Date          string `gorm:"column:date"`
	InTime        string `gorm:"column:in_time"`
	OutTime       string `gorm:"column:out_time"`
	Status        string `gorm:"column:status"`
}

func (bookingRow) TableName() string { return "bookings" }

// PostgresStore reads booking records from the slot-booking database.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to the schedule database. The DSN comes from
// configuration; this package embeds no connection details.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleRead, err)
	}
	return &PostgresStore{db: db}, nil
}

// ListRecords fetches every booking row. Rows are returned in table
// order; the matcher makes no ordering assumptions.
func (s *PostgresStore) ListRecords(ctx context.Context) ([]Record, error) {
	var rows []bookingRow
	err := s.db.WithContext(ctx).
		Select("vehicle_number", "date", "in_time", "out_time", "status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleRead, err)
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{
			VehicleNumber: r.VehicleNumber,
			Date:          r.Date,
			InTime:        r.InTime,
			OutTime:       r.OutTime,
			Status:        r.Status,
		})
	}
	return records, nil
}

// Close releases the underlying connection.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
