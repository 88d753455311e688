package models

import (
	"time"

	"ledgerlens/internal/uuid"

	"gorm.io/gorm"
)

// ImportRunStatus indicates how a bulk import finished.
type ImportRunStatus string

const (
	ImportRunStatusCompleted ImportRunStatus = "completed"
	ImportRunStatusPartial   ImportRunStatus = "partial"
)

// ImportRun records one bulk ledger or report-sheet import. The ID is a
// time-ordered UUIDv7 so runs sort chronologically.
type ImportRun struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Source       string          `gorm:"not null" json:"source"`
	Status       ImportRunStatus `gorm:"not null" json:"status"`
	RowsImported int             `json:"rows_imported"`
	RowsRejected int             `json:"rows_rejected"`
	RowsSkipped  int             `json:"rows_skipped"`
}

// BeforeCreate hook generates a UUIDv7 for new runs
func (r *ImportRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
