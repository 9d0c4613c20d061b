package database

import (
	"log"
	"os"
	"time"

	"go-flowcash/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the embedded sqlite file at path, creating it on first use.
// A single open connection serializes writers; the busy timeout covers the
// readers that still contend on the file lock.
func Connect(path string) *gorm.DB {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_fk=1"), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		logger.Get().WithError(err).WithField("path", path).Fatal("failed to open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().WithError(err).Fatal("failed to access connection pool")
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Get().WithField("path", path).Info("database connection established")
	return db
}
