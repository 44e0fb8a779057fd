package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies a SELECT ... FOR UPDATE row lock on dialects that
// support it. SQLite (used in tests) rejects the syntax and serializes
// writers with its single-writer lock instead, which gives the same
// one-at-a-time guarantee for operations on the same rows.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
