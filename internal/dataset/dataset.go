// Package dataset handles dataset upload intake: blob storage, profile
// creation and the paired graph node.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/blob"
	"github.com/datadynamo/dynamo/internal/graph"
	"github.com/datadynamo/dynamo/internal/ident"
	"github.com/datadynamo/dynamo/internal/models"
	"github.com/datadynamo/dynamo/internal/project"
	"gorm.io/gorm"
)

// Default canvas position for a freshly uploaded dataset's node.
const (
	DefaultNodeX = 100.0
	DefaultNodeY = 100.0
)

// Intake wires the collaborators of an upload: the relational store, the
// blob store, and the optional profiling step.
type Intake struct {
	DB       *gorm.DB
	Blob     blob.Store
	Profiler Profiler
}

// UploadOpts holds parameters for one dataset upload.
type UploadOpts struct {
	ProjectID   string
	ProfileName string
	Filename    string
	Size        int64
	Content     io.Reader
}

// UploadResult reports the records created for an upload. DetectedType is
// the raw extension class (it may name pdf/document/folder, which the
// profile's enum records as Unknown).
type UploadResult struct {
	Profile      *models.DataProfile
	Node         *models.DataNode
	FileURL      string
	DetectedType string
}

// Upload stores the file, then creates the DataProfile and its paired
// DataNode at the default position in one transaction. Nothing is persisted
// until the blob store has confirmed the object; blob failures surface as
// ErrInternal and are not retried.
func (in Intake) Upload(ctx context.Context, opts UploadOpts) (*UploadResult, error) {
	if opts.Filename == "" {
		return nil, fmt.Errorf("dataset: filename is required")
	}
	if _, err := project.Get(in.DB, opts.ProjectID); err != nil {
		return nil, err
	}

	key, err := ObjectKey(opts.ProjectID, opts.Filename)
	if err != nil {
		return nil, err
	}
	url, err := in.Blob.Put(ctx, key, opts.Content)
	if err != nil {
		return nil, fmt.Errorf("dataset: upload %s: %v: %w", opts.Filename, err, apperr.ErrInternal)
	}

	detected := DetectType(opts.Filename)

	var (
		profile models.DataProfile
		node    *models.DataNode
	)
	err = in.DB.Transaction(func(tx *gorm.DB) error {
		id, err := ident.Next(tx, ident.PrefixDataProfile)
		if err != nil {
			return err
		}
		profile = models.DataProfile{
			ID:          id,
			ProfileName: opts.ProfileName,
			DatasetName: opts.Filename,
			DatasetType: CanonicalType(detected),
			FilePath:    url,
			FileSize:    opts.Size,
			RecordCount: "0",
			ProjectID:   opts.ProjectID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("dataset: create profile: %w", err)
		}

		node, err = graph.CreateDataNode(tx, opts.ProjectID, profile.ID, DefaultNodeX, DefaultNodeY)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.Profiler != nil {
		if err := in.Profiler.Profile(ctx, in.DB, &profile); err != nil {
			return nil, fmt.Errorf("dataset: profile %s: %v: %w", profile.ID, err, apperr.ErrInternal)
		}
	}

	return &UploadResult{
		Profile:      &profile,
		Node:         node,
		FileURL:      url,
		DetectedType: detected,
	}, nil
}

// ObjectKey builds the blob path for an upload. The random segment keeps
// repeated uploads of the same filename from colliding.
func ObjectKey(projectID, filename string) (string, error) {
	id, err := nanoid.New()
	if err != nil {
		return "", fmt.Errorf("dataset: object key: %w", err)
	}
	return fmt.Sprintf("projects/%s/dataset/%s/%s", projectID, id, filename), nil
}

// Get retrieves a profile with whatever sub-profiles have been populated.
func Get(db *gorm.DB, profileID string) (*models.DataProfile, error) {
	var profile models.DataProfile
	err := db.
		Preload("TextProfile").
		Preload("ImageProfile").
		Preload("AudioProfile").
		Preload("VideoProfile").
		Preload("CSVProfile").
		Preload("MixedProfile").
		Where("id = ?", profileID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("dataset: profile %s: %w", profileID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: get profile %s: %w", profileID, err)
	}
	return &profile, nil
}

// ListByProject returns all profiles in a project, oldest first.
func ListByProject(db *gorm.DB, projectID string) ([]models.DataProfile, error) {
	var profiles []models.DataProfile
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("dataset: list profiles for %s: %w", projectID, err)
	}
	return profiles, nil
}
