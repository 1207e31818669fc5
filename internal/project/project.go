// Package project provides project lifecycle operations.
package project

import (
	"errors"
	"fmt"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/ident"
	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/gorm"
)

// Create creates a project owned by userID. Ownership is not checked against
// the users table; a project can reference any user id.
func Create(db *gorm.DB, name, userID string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project: name is required")
	}

	var proj models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := ident.Next(tx, ident.PrefixProject)
		if err != nil {
			return err
		}
		proj = models.Project{ID: id, Name: name, UserID: userID}
		if err := tx.Create(&proj).Error; err != nil {
			return fmt.Errorf("project: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proj, nil
}

// Get retrieves a project by id.
func Get(db *gorm.DB, id string) (*models.Project, error) {
	var proj models.Project
	err := db.Where("id = ?", id).First(&proj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project: %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("project: get %s: %w", id, err)
	}
	return &proj, nil
}

// ListByUser returns all projects owned by userID, oldest first.
func ListByUser(db *gorm.DB, userID string) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project: list for %s: %w", userID, err)
	}
	return projects, nil
}
