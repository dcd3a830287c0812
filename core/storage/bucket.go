package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Bucket is a single object storage bucket.
type Bucket interface {
	// Name returns the bucket name.
	Name() string
	// Exists reports whether the bucket has been created.
	Exists(ctx context.Context) (bool, error)
	// Create makes the bucket in the configured region.
	Create(ctx context.Context) error
	// Put stores data under object.
	Put(ctx context.Context, object string, data []byte, contentType string) error
	// Get opens object for reading.
	Get(ctx context.Context, object string) (io.ReadCloser, error)
	// List returns the keys under prefix. Without recursion, nested folders
	// are returned once with a trailing slash.
	List(ctx context.Context, prefix string, recursive bool) ([]string, error)
}

const defaultTimeout = 30 * time.Second

// Open returns the bucket named in cfg. No request is made until first use.
func Open(cfg Config) (Bucket, error) {
	host, secure := endpoint(cfg)
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	client, err := minio.New(host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    secure,
		Region:    cfg.Region,
		Transport: transport(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &minioBucket{client: client, name: cfg.Bucket, region: cfg.Region}, nil
}

// endpoint strips the scheme minio does not accept. An https scheme turns
// TLS on regardless of use_ssl.
func endpoint(cfg Config) (string, bool) {
	if host, ok := strings.CutPrefix(cfg.Endpoint, "https://"); ok {
		return host, true
	}
	return strings.TrimPrefix(cfg.Endpoint, "http://"), cfg.UseSSL
}

// transport bounds dial, TLS handshake and first response byte by timeout.
func transport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

type minioBucket struct {
	client *minio.Client
	name   string
	region string
}

func (b *minioBucket) Name() string {
	return b.name
}

func (b *minioBucket) Exists(ctx context.Context) (bool, error) {
	return b.client.BucketExists(ctx, b.name)
}

func (b *minioBucket) Create(ctx context.Context) error {
	return b.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{Region: b.region})
}

func (b *minioBucket) Put(ctx context.Context, object string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, b.name, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (b *minioBucket) Get(ctx context.Context, object string) (io.ReadCloser, error) {
	return b.client.GetObject(ctx, b.name, object, minio.GetObjectOptions{})
}

func (b *minioBucket) List(ctx context.Context, prefix string, recursive bool) ([]string, error) {
	var keys []string
	for obj := range b.client.ListObjects(ctx, b.name, minio.ListObjectsOptions{Prefix: prefix, Recursive: recursive}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
