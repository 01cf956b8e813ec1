// Package db opens the document store selected in the config
package db

import (
	"bitwise74/videogen-api/internal/store"
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Type string
	URL  string
	Name string
}

func OptionsFromConfig() Options {
	return Options{
		Type: viper.GetString("database.type"),
		URL:  viper.GetString("database.url"),
		Name: viper.GetString("database.name"),
	}
}

// New never fails. When the database isn't configured or can't be
// reached the returned store is a *store.Unavailable carrying the reason,
// so the API can still start and report it on /test
func New(ctx context.Context, o Options) store.Store {
	s, err := open(ctx, o)
	if err != nil {
		zap.L().Error("Database unavailable", zap.String("type", o.Type), zap.Error(err))
		return store.NewUnavailable(err)
	}

	zap.L().Info("Database ready", zap.String("type", o.Type), zap.String("name", s.Name()))
	return s
}

func open(ctx context.Context, o Options) (store.Store, error) {
	if o.Type == "memory" {
		return store.NewMemory(), nil
	}

	if o.URL == "" {
		return nil, store.ErrNotConfigured
	}

	switch o.Type {
	case "mongo":
		return store.NewMongo(ctx, o.URL, o.Name)
	case "sqlite":
		return openGorm(sqlite.Open(o.URL), o.Name)
	case "postgres":
		return openGorm(postgres.Open(o.URL), o.Name)
	default:
		return nil, fmt.Errorf("unsupported database type %q", o.Type)
	}
}

func openGorm(dialector gorm.Dialector, name string) (store.Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", dialector.Name(), err)
	}

	return store.NewGorm(db, name)
}
