package checks

import (
	"context"
	"fmt"
	"strings"

	"squeezer/core/storage"

	"go.uber.org/zap"
)

// ArchiveReport describes the result archive bucket.
type ArchiveReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	// Entities lists the entity types with archived results.
	Entities []string `json:"entities"`
}

// CheckArchive reports whether the archive bucket exists and which entity
// folders it holds under prefix.
func CheckArchive(ctx context.Context, bucket storage.Bucket, prefix string) (*ArchiveReport, error) {
	exists, err := bucket.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &ArchiveReport{Bucket: bucket.Name(), Exists: exists, Entities: []string{}}
	if !exists {
		return report, nil
	}

	folder := strings.Trim(prefix, "/")
	if folder != "" {
		folder += "/"
	}
	keys, err := bucket.List(ctx, folder, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}
	for _, key := range keys {
		if name, ok := strings.CutSuffix(strings.TrimPrefix(key, folder), "/"); ok && name != "" {
			report.Entities = append(report.Entities, name)
		}
	}
	return report, nil
}

// FixArchive creates the archive bucket.
func FixArchive(ctx context.Context, bucket storage.Bucket, logger *zap.Logger) error {
	if err := bucket.Create(ctx); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket.Name()), zap.Error(err))
		return err
	}
	logger.Info("Created archive bucket", zap.String("bucket", bucket.Name()))
	return nil
}
