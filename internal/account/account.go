// Package account provides user registration and credential checks.
package account

import (
	"errors"
	"fmt"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/ident"
	"github.com/datadynamo/dynamo/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a user with a bcrypt-hashed password. A taken username
// fails with ErrConflict.
func Register(db *gorm.DB, username, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("account: username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("account: password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account: hash password: %w", err)
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return fmt.Errorf("account: check username %q: %w", username, err)
		}
		if count > 0 {
			return fmt.Errorf("account: username %q taken: %w", username, apperr.ErrConflict)
		}

		id, err := ident.Next(tx, ident.PrefixUser)
		if err != nil {
			return err
		}
		user = models.User{ID: id, Username: username, Password: string(hash)}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("account: create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies a username/password pair and returns the user on success.
// Unknown usernames and bad passwords both fail with ErrUnauthorized; the
// check is stateless, no token or session is issued.
func Login(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("account: login %q: %w", username, apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("account: load user %q: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("account: login %q: %w", username, apperr.ErrUnauthorized)
	}
	return &user, nil
}
