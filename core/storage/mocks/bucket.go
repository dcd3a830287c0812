package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Bucket is a mock implementation of storage.Bucket. Name is not mocked.
type Bucket struct {
	mock.Mock
	BucketName string
}

func (m *Bucket) Name() string {
	return m.BucketName
}

func (m *Bucket) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *Bucket) Create(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Bucket) Put(ctx context.Context, object string, data []byte, contentType string) error {
	return m.Called(ctx, object, data, contentType).Error(0)
}

func (m *Bucket) Get(ctx context.Context, object string) (io.ReadCloser, error) {
	args := m.Called(ctx, object)
	if r, ok := args.Get(0).(io.ReadCloser); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Bucket) List(ctx context.Context, prefix string, recursive bool) ([]string, error) {
	args := m.Called(ctx, prefix, recursive)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}
