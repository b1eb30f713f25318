package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// SourceDB is the upstream operational database. The pipeline only reads
// from it, so the pool is kept small and no migrations are applied.
type SourceDB struct {
	logger *logrus.Logger
	*gorm.DB
}

type SourceConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

func NewSourceDB(logger *logrus.Logger, cfg *SourceConfig) (*SourceDB, error) {
	logger.WithFields(logrus.Fields{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DBName,
		"user": cfg.User,
	}).Info("connecting to source database")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to source database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("source database ping failed: %w", err)
	}

	return &SourceDB{logger: logger, DB: gormDB}, nil
}

func (db *SourceDB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
