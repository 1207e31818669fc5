package models

// IDSequence is the per-prefix counter behind human-readable identifiers.
// Last is the highest number ever allocated for Prefix; it only moves
// forward, so deleted entities leave gaps instead of freeing numbers.
type IDSequence struct {
	Prefix string `gorm:"primaryKey;size:8"`
	Last   int    `gorm:"not null"`
}
