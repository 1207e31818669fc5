package models

import "time"

// PipelineStage is one user-defined transform step. The script body starts as
// placeholder text and is filled in by generation later; no update endpoint
// exists yet.
type PipelineStage struct {
	ID             string    `gorm:"primaryKey;size:255" json:"id"`
	ProjectID      string    `gorm:"size:255;not null;index" json:"project_id"`
	StageName      string    `gorm:"size:255;not null" json:"stage_name"`
	StageType      string    `gorm:"size:50;not null" json:"stage_type"`
	UserPrompt     string    `gorm:"type:text" json:"user_prompt"`
	Script         string    `gorm:"type:text;not null" json:"script"`
	ScriptLanguage string    `gorm:"size:50;not null" json:"script_language"`
	DockerImage    string    `gorm:"size:255;not null" json:"docker_image"`
	CreatedAt      time.Time `json:"created_at"`
}

// PipelineExecution records one run of a pipeline against a dataset.
// Execution is not scheduled by this backend; the table exists so runs
// started elsewhere have a durable status row.
type PipelineExecution struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   string     `gorm:"size:255;not null;index" json:"project_id"`
	DatasetID   string     `gorm:"size:255;not null" json:"dataset_id"`
	Status      string     `gorm:"size:50;not null" json:"status"` // pending, running, completed, failed
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ProjectResult stores output produced for a project.
type ProjectResult struct {
	ID         string    `gorm:"primaryKey;size:255" json:"result_id"`
	ProjectID  string    `gorm:"size:255;not null;index" json:"project_id"`
	ResultData string    `gorm:"type:text" json:"result_data"`
	CreatedAt  time.Time `json:"created_at"`
}
