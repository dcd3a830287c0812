package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"squeezer/core/reconcile"

	"github.com/goccy/go-json"
)

// Entry is the archived form of one invocation.
type Entry struct {
	ID         string         `json:"id"`
	Entity     string         `json:"entity"`
	Key        string         `json:"key"`
	State      string         `json:"state"`
	Action     string         `json:"action"`
	DryRun     bool           `json:"dry_run"`
	Changed    bool           `json:"changed"`
	Started    string         `json:"started"`
	DurationMS int64          `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
	Result     map[string]any `json:"result,omitempty"`
}

// Archive writes invocation results as JSON objects into a bucket.
// It implements reconcile.Observer.
type Archive struct {
	bucket Bucket
	prefix string

	once      sync.Once
	bucketErr error
}

// NewArchive creates an archive in bucket under prefix.
func NewArchive(bucket Bucket, prefix string) *Archive {
	return &Archive{bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Bucket returns the bucket the archive writes to.
func (a *Archive) Bucket() Bucket {
	return a.bucket
}

// Prefix returns the folder every object is written under, without slashes.
func (a *Archive) Prefix() string {
	return a.prefix
}

// EnsureBucket creates the bucket if it does not exist. The check runs once.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	a.once.Do(func() {
		exists, err := a.bucket.Exists(ctx)
		if err != nil {
			a.bucketErr = fmt.Errorf("failed to check bucket %s: %w", a.bucket.Name(), err)
			return
		}
		if exists {
			return
		}
		if err := a.bucket.Create(ctx); err != nil {
			a.bucketErr = fmt.Errorf("failed to create bucket %s: %w", a.bucket.Name(), err)
		}
	})
	return a.bucketErr
}

// ObjectName returns where rec is archived: <prefix>/<entity>/<yyyy/mm/dd>/<id>.json.
func (a *Archive) ObjectName(rec reconcile.Record) string {
	return path.Join(a.prefix, rec.Kind.Singular, rec.Started.UTC().Format("2006/01/02"), rec.ID+".json")
}

// Observe archives the record.
func (a *Archive) Observe(ctx context.Context, rec reconcile.Record) error {
	if err := a.EnsureBucket(ctx); err != nil {
		return err
	}

	entry := Entry{
		ID:         rec.ID,
		Entity:     rec.Kind.Singular,
		Key:        rec.Key.String(),
		State:      string(rec.State),
		Action:     string(rec.Action),
		DryRun:     rec.DryRun,
		Changed:    rec.Changed,
		Started:    rec.Started.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		DurationMS: rec.Duration.Milliseconds(),
	}
	if rec.Err != nil {
		entry.Error = rec.Err.Error()
	} else {
		entry.Result = rec.Result.Map()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode invocation %s: %w", rec.ID, err)
	}

	name := a.ObjectName(rec)
	if err := a.bucket.Put(ctx, name, data, "application/json"); err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return nil
}

// List returns the archived object names for an entity type, sorted.
// An empty entity lists everything.
func (a *Archive) List(ctx context.Context, entity string) ([]string, error) {
	prefix := a.prefix
	if entity != "" {
		prefix = path.Join(prefix, entity)
	}
	if prefix != "" {
		prefix += "/"
	}

	keys, err := a.bucket.List(ctx, prefix, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	var names []string
	for _, key := range keys {
		if strings.HasSuffix(key, ".json") {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Get reads one archived entry.
func (a *Archive) Get(ctx context.Context, name string) (*Entry, error) {
	obj, err := a.bucket.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return &entry, nil
}
