package repositories

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"taskhub-server/configs"
	"taskhub-server/internal/loggers"
	"taskhub-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type dbs struct {
	Postgres *gorm.DB
	Redis    *redis.Client
}

// DBS holds the shared store clients, initialized once by Init.
var DBS dbs

// Init connects to Postgres (required) and Redis (optional) and runs the
// schema migration.
func Init(log *zap.Logger) error {
	if err := initPostgres(log); err != nil {
		return err
	}
	if err := initRedis(log); err != nil {
		return err
	}
	return nil
}

func initPostgres(log *zap.Logger) error {
	host, port, err := net.SplitHostPort(configs.Configs.Postgres.Address)
	if err != nil {
		return fmt.Errorf("invalid postgres address: %w", err)
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		host,
		configs.Configs.Postgres.Username,
		configs.Configs.Postgres.Password,
		configs.Configs.Postgres.Database,
		port,
	)

	gormLogger := loggers.NewZapGormLogger(
		log,
		gormlogger.Warn,
		200*time.Millisecond,
		true,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := AutoMigrateInOrder(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	DBS.Postgres = db
	log.Info("PostgreSQL connected successfully")
	return nil
}

// AutoMigrateInOrder migrates the schema respecting foreign-key dependencies.
func AutoMigrateInOrder(db *gorm.DB) error {
	modelsInOrder := []interface{}{
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.Attachment{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.TimeLog{},
	}

	for _, model := range modelsInOrder {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}

func initRedis(log *zap.Logger) error {
	if !configs.Configs.Redis.Enabled || len(configs.Configs.Redis.Addresses) == 0 {
		log.Info("Redis disabled, unread-count caching is off")
		return nil
	}

	opt := &redis.Options{
		Addr:     configs.Configs.Redis.Addresses[0],
		Username: configs.Configs.Redis.Username,
		Password: configs.Configs.Redis.Password,
		DB:       configs.Configs.Redis.Database,
	}
	if configs.Configs.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	DBS.Redis = client
	log.Info("Redis connected successfully")
	return nil
}
