package main

import (
	"context"
	"fmt"

	"github.com/ignatzorin/promptfolio-backend/internal/db"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
)

func runMigrate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Error("main: ошибка подключения к базе")
		return err
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		logger.Log.WithError(err).Error("main: ошибка миграций")
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Log.Info("main: миграции применены")
	return nil
}
