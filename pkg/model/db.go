package model

import (
	"fmt"
	"time"

	"rippletick/pkg/config"
	"rippletick/pkg/xlog"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	rds    *redis.Client
	logger = xlog.GetLogger()
)

func DBInit() {
	db = OpenPostgres()
	if config.Shared.Redis.Main.Enabled {
		rds = OpenRedis("main")
	}
}

func GetDB() *gorm.DB {
	return db
}

func GetRedis() *redis.Client {
	return rds
}

func OpenPostgres() *gorm.DB {
	cfg := config.Shared.Postgres.Main
	if cfg.Host == "" {
		logger.Fatalf("empty db host")
	}

	logger.Infof("postgres connecting tcp(%s:%d)/%s", cfg.Host, cfg.Port, cfg.DB)

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.DB, cfg.SSLMode,
	)

	logMode := gormLogger.Info
	if !config.Shared.IsDebug {
		logMode = gormLogger.Silent
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: false,
		Logger:                 gormLogger.Default.LogMode(logMode),
	})
	if err != nil {
		logger.Fatalf("connect postgres failed #1, err:%s", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("connect postgres failed #2, err:%s", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(10 * time.Hour)
	sqlDB.SetMaxIdleConns(4)

	logger.Infof("postgres connected tcp(%s:%d)/%s", cfg.Host, cfg.Port, cfg.DB)

	return db
}

func OpenRedis(name string) *redis.Client {
	cfg := config.Shared.Redis.Main
	if rds != nil {
		return rds
	}

	logger.Infof("redis(%s) connecting %s[%d]", name, cfg.Addr, cfg.DB)

	opts := redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Pass,
		DB:       cfg.DB,
	}

	rc := redis.NewClient(&opts)

	logger.Infof("redis(%s) connected %s[%d]", name, cfg.Addr, cfg.DB)

	return rc
}
