package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"squeezer/core/reconcile"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// HistoryTable is the table invocations are recorded in.
const HistoryTable = "invocations"

// Invocation is one recorded module invocation.
type Invocation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InvocationID   string    `gorm:"size:36;index" json:"invocation_id"`
	Entity         string    `gorm:"size:64;index" json:"entity"`
	NaturalKey     string    `gorm:"size:512" json:"natural_key"`
	State          string    `gorm:"size:32" json:"state"`
	Action         string    `gorm:"size:32" json:"action"`
	DryRun         bool      `json:"dry_run"`
	Changed        bool      `json:"changed"`
	Failed         bool      `json:"failed"`
	Message        string    `gorm:"type:text" json:"message,omitempty"`
	Result         string    `gorm:"type:text" json:"result,omitempty"`
	DurationMillis int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName pins the table name.
func (Invocation) TableName() string {
	return HistoryTable
}

// HistoryColumns are the columns the history table must have.
var HistoryColumns = []string{
	"id", "invocation_id", "entity", "natural_key", "state", "action",
	"dry_run", "changed", "failed", "message", "result", "duration_millis", "created_at",
}

// History records invocations into the database. It implements reconcile.Observer.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history recorder.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the history table and verifies its columns.
func (h *History) Migrate(ctx context.Context) error {
	if err := h.db.WithContext(ctx).AutoMigrate(&Invocation{}); err != nil {
		return fmt.Errorf("failed to migrate history: %w", err)
	}
	missing, err := MissingColumns(h.db.WithContext(ctx), HistoryTable, HistoryColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("history table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Observe stores the record.
func (h *History) Observe(ctx context.Context, rec reconcile.Record) error {
	row, err := NewInvocation(rec)
	if err != nil {
		return err
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record invocation %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns the latest invocations, newest first.
// An empty entity matches every entity type.
func (h *History) Recent(ctx context.Context, entity string, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 20
	}
	q := h.db.WithContext(ctx).Order("id DESC").Limit(limit)
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	var rows []Invocation
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return rows, nil
}

// NewInvocation converts a record into a history row.
func NewInvocation(rec reconcile.Record) (Invocation, error) {
	row := Invocation{
		InvocationID:   rec.ID,
		Entity:         rec.Kind.Singular,
		NaturalKey:     rec.Key.String(),
		State:          string(rec.State),
		Action:         string(rec.Action),
		DryRun:         rec.DryRun,
		Changed:        rec.Changed,
		Failed:         rec.Failed(),
		DurationMillis: rec.Duration.Milliseconds(),
		CreatedAt:      rec.Started,
	}
	if rec.Err != nil {
		row.Message = rec.Err.Error()
		return row, nil
	}
	data, err := json.Marshal(rec.Result)
	if err != nil {
		return row, fmt.Errorf("failed to encode result of %s: %w", rec.ID, err)
	}
	row.Result = string(data)
	return row, nil
}
