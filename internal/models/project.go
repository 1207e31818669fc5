package models

import "time"

// Project groups datasets, pipeline stages and graph nodes under one owner.
// UserID is not a foreign key: ownership is tracked loosely and a project
// survives independent of the users table.
type Project struct {
	ID        string    `gorm:"primaryKey;size:255" json:"project_id"`
	Name      string    `gorm:"size:255;not null" json:"project_name"`
	UserID    string    `gorm:"size:255;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
