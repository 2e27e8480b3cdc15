package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitGormDB initializes and returns a GORM database instance on the sqlite
// file at path, with foreign keys enforced and GORM's logs sent to log.
func InitGormDB(path string, log zerolog.Logger) (*gorm.DB, error) {
	gormLog := log.With().Str("component", "gorm").Logger()
	gormLogger := gormlogger.New(
		&gormLog,
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(DataSourceName(path)), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Debug().Str("path", path).Msg("GORM database initialized")
	return db, nil
}

// OpenGorm returns a GORM handle on the store's database file. Unlike the
// Store methods it keeps its connection open until the caller closes it.
func (s *Store) OpenGorm() (*gorm.DB, error) {
	return InitGormDB(s.path, s.log)
}
