// Package ident allocates human-readable, type-prefixed entity identifiers
// like DAT0001. Numbering is backed by a per-prefix sequence row so two
// concurrent inserts can never compute the same candidate.
package ident

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identifier prefixes. The 3-letter node prefixes double as the type
// discriminator for graph operations.
const (
	PrefixUser          = "USR"
	PrefixProject       = "PRJ"
	PrefixDataProfile   = "DTP"
	PrefixPipelineStage = "PS"
	PrefixDataNode      = "DAT"
	PrefixPipelineNode  = "PIP"
	PrefixResult        = "RES"
)

// Format renders an identifier: prefix plus the number zero-padded to four
// digits. Numbers past 9999 widen naturally.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// Next allocates the next identifier for prefix. It must be called inside the
// same transaction as the insert it serves: the sequence row is locked FOR
// UPDATE, so concurrent allocations for one prefix serialize on the row and
// the number is only durable if the surrounding insert commits. Numbers are
// monotonic per prefix; retired numbers are never reused.
func Next(tx *gorm.DB, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("ident: prefix is required")
	}

	// Ensure the sequence row exists, then lock and bump it. The insert is
	// a no-op when another writer got there first.
	seed := models.IDSequence{Prefix: prefix, Last: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", fmt.Errorf("ident: seed sequence %s: %w", prefix, err)
	}

	var seq models.IDSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ?", prefix).First(&seq).Error; err != nil {
		return "", fmt.Errorf("ident: lock sequence %s: %w", prefix, err)
	}

	seq.Last++
	if err := tx.Model(&models.IDSequence{}).Where("prefix = ?", prefix).
		Update("last", seq.Last).Error; err != nil {
		return "", fmt.Errorf("ident: advance sequence %s: %w", prefix, err)
	}
	return Format(prefix, seq.Last), nil
}

// SeedFromExisting raises the sequence for prefix to the highest numeric
// suffix found in the given model's identifier column. Migration helper for
// stores that predate the sequence table; never lowers a sequence.
func SeedFromExisting(db *gorm.DB, model interface{}, column, prefix string) error {
	var ids []string
	if err := db.Model(model).Where(column+" LIKE ?", prefix+"%").
		Pluck(column, &ids).Error; err != nil {
		return fmt.Errorf("ident: scan existing %s ids: %w", prefix, err)
	}

	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var seq models.IDSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("prefix = ?", prefix).First(&seq).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = models.IDSequence{Prefix: prefix, Last: max}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("ident: seed sequence %s: %w", prefix, err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("ident: lock sequence %s: %w", prefix, err)
		}
		if seq.Last >= max {
			return nil
		}
		if err := tx.Model(&models.IDSequence{}).Where("prefix = ?", prefix).
			Update("last", max).Error; err != nil {
			return fmt.Errorf("ident: advance sequence %s: %w", prefix, err)
		}
		return nil
	})
}
