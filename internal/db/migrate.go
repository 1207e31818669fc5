package db

import (
	"fmt"

	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.DataProfile{},
		&models.TextProfile{},
		&models.ImageProfile{},
		&models.AudioProfile{},
		&models.VideoProfile{},
		&models.CSVProfile{},
		&models.MixedProfile{},
		&models.PipelineStage{},
		&models.PipelineExecution{},
		&models.ProjectResult{},
		&models.DataNode{},
		&models.PipelineNode{},
		&models.IDSequence{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
