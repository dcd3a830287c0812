package integrity

import (
	"context"
	"errors"
	"sync"

	"squeezer/core/pulp"
	"squeezer/core/storage"
	"squeezer/feature/integrity/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrDisabled is returned by checks whose backend is not configured.
var ErrDisabled = errors.New("disabled by configuration")

// Service runs health checks against the Pulp server and the optional
// history database and result archive.
type Service struct {
	client pulp.Client
	db     *gorm.DB
	store  storage.Bucket
	prefix string
	logger *zap.Logger
}

// NewService creates a new integrity service. db and store may be nil;
// prefix is the archive folder inside store.
func NewService(client pulp.Client, db *gorm.DB, store storage.Bucket, prefix string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		db:     db,
		store:  store,
		prefix: prefix,
		logger: logger,
	}
}

// CheckPulp reads the server status.
func (s *Service) CheckPulp(ctx context.Context) (*checks.PulpReport, error) {
	return checks.CheckPulp(ctx, s.client)
}

// CheckHistory verifies the history table.
func (s *Service) CheckHistory(ctx context.Context) (*checks.HistoryReport, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	return checks.CheckHistory(ctx, s.db)
}

// CheckArchive inspects the archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.store == nil {
		return nil, ErrDisabled
	}
	return checks.CheckArchive(ctx, s.store, s.prefix)
}

// FixArchive creates the archive bucket when it is missing.
func (s *Service) FixArchive(ctx context.Context) error {
	if s.store == nil {
		return ErrDisabled
	}
	return checks.FixArchive(ctx, s.store, s.logger)
}

// All runs every check concurrently. A failing check is reported in place
// rather than aborting the others.
func (s *Service) All(ctx context.Context) map[string]any {
	var (
		mu     sync.Mutex
		report = make(map[string]any, 3)
	)
	put := func(name string, v any, err error) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case errors.Is(err, ErrDisabled):
			report[name] = map[string]any{"status": "disabled"}
		case err != nil:
			report[name] = map[string]any{"status": "error", "error": err.Error()}
		default:
			report[name] = v
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		r, err := s.CheckPulp(ctx)
		put("pulp", r, err)
		return nil
	})
	g.Go(func() error {
		r, err := s.CheckHistory(ctx)
		put("history", r, err)
		return nil
	})
	g.Go(func() error {
		r, err := s.CheckArchive(ctx)
		put("archive", r, err)
		return nil
	})
	_ = g.Wait()
	return report
}
