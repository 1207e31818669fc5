package models

// User is a registered account. The password column holds a bcrypt hash,
// never plaintext. Users are immutable after registration.
type User struct {
	ID       string `gorm:"primaryKey;size:255" json:"id"`
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
}
