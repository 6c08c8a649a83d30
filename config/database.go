package config

import (
	"fmt"
	"time"

	"speedrun/repository"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func dsn(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
		cfg.DatabaseSchema,
	)
}

// GormConfig is shared by the server and the repository tests so both resolve
// the same schema qualified table names.
func GormConfig(schemaName string) *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   schemaName + ".",
			SingularTable: false,
		},
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// InitDB connects to postgres, retrying while the database is still starting,
// and migrates every table the service owns.
func InitDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn(cfg)), GormConfig(cfg.DatabaseSchema))
		if err != nil {
			log.Warn("database not reachable yet", zap.Error(err))
		}
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, err
	}
	if err := Migrate(db, cfg.DatabaseSchema); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB, schemaName string) error {
	if err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schemaName)).Error; err != nil {
		return err
	}
	err := db.AutoMigrate(
		&repository.Profile{},
		&repository.UserRole{},
		&repository.Gamemode{},
		&repository.Category{},
		&repository.Run{},
		&repository.Ban{},
		&repository.Announcement{},
		&repository.ActivityLog{},
	)
	if err != nil {
		return err
	}
	// at most one record holder per category
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS runs_one_world_record ON %s.runs (category_id) WHERE is_world_record`,
		schemaName,
	)).Error
}
