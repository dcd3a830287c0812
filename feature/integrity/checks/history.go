package checks

import (
	"context"
	"fmt"

	"squeezer/core/database"

	"gorm.io/gorm"
)

// HistoryReport describes the invocation history table.
type HistoryReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckHistory verifies the history table against the expected columns.
func CheckHistory(ctx context.Context, db *gorm.DB) (*HistoryReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	missing, err := database.MissingColumns(db.WithContext(ctx), database.HistoryTable, database.HistoryColumns)
	if err != nil {
		return nil, err
	}

	report := &HistoryReport{Table: database.HistoryTable, MissingColumns: missing, Status: "ok"}
	if report.MissingColumns == nil {
		report.MissingColumns = []string{}
	}
	if len(missing) > 0 {
		report.Status = "error"
	}
	return report, nil
}
