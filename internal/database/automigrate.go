package database

import (
	"fmt"
	"time"

	"form-template-api/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modelInfo struct {
	model     interface{}
	tableName string
}

// models is ordered so that referenced tables are created first
var models = []modelInfo{
	{&domain.FormTemplate{}, "form_templates"},
	{&domain.FormElement{}, "form_elements"},
	{&domain.FormCategoryMapping{}, "form_category_mappings"},
	{&domain.FormSubmission{}, "form_submissions"},
	{&domain.FormSubmissionValue{}, "form_submission_values"},
	{&domain.FormUpload{}, "form_uploads"},
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	all := make([]interface{}, 0, len(models))
	for _, m := range models {
		all = append(all, m.model)
	}
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate migrates table by table, logging whether each one was
// created or only updated
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	logger.Info("Starting safe auto-migration", zap.Int("total_models", len(models)))

	for _, m := range models {
		existed := migrator.HasTable(m.model)
		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}
		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", existed),
		)
	}
	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate up to maxRetries times
// with linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = SafeAutoMigrate(db, logger); err == nil {
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
