package blob

import (
	"Moodboard/config"
	"Moodboard/pkg/errs"
	"context"
	"errors"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GcsStore Google Cloud Storage
type GcsStore struct {
	client  *storage.Client
	bucket  *storage.BucketHandle
	timeout time.Duration
}

var _ Store = (*GcsStore)(nil)

// NewGcs 凭证优先级: credentials_json > credentials_file > 默认凭证链
func NewGcs(ctx context.Context, cfg *config.GcsConfig, timeout time.Duration) (*GcsStore, error) {
	opts := make([]option.ClientOption, 0, 1)
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GcsStore{
		client:  client,
		bucket:  client.Bucket(cfg.Bucket),
		timeout: timeout,
	}, nil
}

func (s *GcsStore) Put(ctx context.Context, objectKey string, data []byte, contentType string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	w := s.bucket.Object(objectKey).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return errs.Blob("put", objectKey, err)
	}
	return errs.Blob("put", objectKey, w.Close())
}

func (s *GcsStore) Exists(ctx context.Context, objectKey string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.bucket.Object(objectKey).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errs.Blob("exists", objectKey, err)
	}
	return true, nil
}

func (s *GcsStore) Get(ctx context.Context, objectKey string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.bucket.Object(objectKey).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, errs.BlobNotFound("get", objectKey)
	}
	if err != nil {
		return nil, errs.Blob("get", objectKey, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Blob("get", objectKey, err)
	}
	return data, nil
}

func (s *GcsStore) Delete(ctx context.Context, objectKey string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.bucket.Object(objectKey).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return errs.Blob("delete", objectKey, err)
}

func (s *GcsStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	keys := make([]string, 0)
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errs.Blob("list", prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// Close 关闭客户端
func (s *GcsStore) Close() error {
	return s.client.Close()
}
