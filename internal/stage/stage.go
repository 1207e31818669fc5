// Package stage provides pipeline stage creation with its paired graph node.
package stage

import (
	"fmt"

	"github.com/datadynamo/dynamo/internal/graph"
	"github.com/datadynamo/dynamo/internal/ident"
	"github.com/datadynamo/dynamo/internal/models"
	"github.com/datadynamo/dynamo/internal/project"
	"gorm.io/gorm"
)

// Defaults for a user-defined stage. The script body is a placeholder until
// generation fills it in.
const (
	DefaultStageType      = "user_defined"
	DefaultScript         = "# Generated script will go here"
	DefaultScriptLanguage = "python"
	DefaultDockerImage    = "default-executor"

	DefaultNodeX = 200.0
	DefaultNodeY = 200.0
)

// CreateOpts holds parameters for creating a stage.
type CreateOpts struct {
	ProjectID string
	Name      string
	Prompt    string
}

// Create creates a PipelineStage and its paired PipelineNode at the default
// position, transactionally. The project must exist.
func Create(db *gorm.DB, opts CreateOpts) (*models.PipelineStage, *models.PipelineNode, error) {
	if opts.Name == "" {
		return nil, nil, fmt.Errorf("stage: name is required")
	}
	if _, err := project.Get(db, opts.ProjectID); err != nil {
		return nil, nil, err
	}

	var (
		st   models.PipelineStage
		node *models.PipelineNode
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := ident.Next(tx, ident.PrefixPipelineStage)
		if err != nil {
			return err
		}
		st = models.PipelineStage{
			ID:             id,
			ProjectID:      opts.ProjectID,
			StageName:      opts.Name,
			StageType:      DefaultStageType,
			UserPrompt:     opts.Prompt,
			Script:         DefaultScript,
			ScriptLanguage: DefaultScriptLanguage,
			DockerImage:    DefaultDockerImage,
		}
		if err := tx.Create(&st).Error; err != nil {
			return fmt.Errorf("stage: create: %w", err)
		}

		node, err = graph.CreatePipelineNode(tx, opts.ProjectID, st.ID, DefaultNodeX, DefaultNodeY)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &st, node, nil
}

// ListByProject returns all stages in a project, oldest first.
func ListByProject(db *gorm.DB, projectID string) ([]models.PipelineStage, error) {
	var stages []models.PipelineStage
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").Find(&stages).Error; err != nil {
		return nil, fmt.Errorf("stage: list for %s: %w", projectID, err)
	}
	return stages, nil
}
