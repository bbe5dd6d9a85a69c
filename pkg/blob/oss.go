package blob

import (
	"Moodboard/config"
	"Moodboard/pkg/errs"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// OssStore 阿里云 OSS
type OssStore struct {
	Client     *oss.Client
	BucketName string
	timeout    time.Duration
}

var _ Store = (*OssStore)(nil)

// NewOss 配置了 ak/sk 用静态凭证, 否则从环境变量读取
func NewOss(cfg *config.OssConfig, timeout time.Duration) *OssStore {
	var provider credentials.CredentialsProvider = credentials.NewEnvironmentVariableCredentialsProvider()
	if cfg.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret)
	}
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(provider)

	return &OssStore{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		timeout:    timeout,
	}
}

// Put 上传
func (s *OssStore) Put(ctx context.Context, objectKey string, data []byte, contentType string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.BucketName),
		Key:         oss.Ptr(objectKey),
		ContentType: oss.Ptr(contentType),
		Body:        bytes.NewReader(data),
	})
	return errs.Blob("put", objectKey, err)
}

// Exists 对象是否存在
func (s *OssStore) Exists(ctx context.Context, objectKey string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.Client.IsObjectExist(ctx, s.BucketName, objectKey)
	if err != nil {
		return false, errs.Blob("exists", objectKey, err)
	}
	return ok, nil
}

// Get 下载为字节
func (s *OssStore) Get(ctx context.Context, objectKey string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	})
	if err != nil {
		var serr *oss.ServiceError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, errs.BlobNotFound("get", objectKey)
		}
		return nil, errs.Blob("get", objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errs.Blob("get", objectKey, err)
	}
	return data, nil
}

// Delete 删除对象
func (s *OssStore) Delete(ctx context.Context, objectKey string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	})
	return errs.Blob("delete", objectKey, err)
}

// List 列举前缀下全部对象
func (s *OssStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	keys := make([]string, 0)
	p := s.Client.NewListObjectsV2Paginator(&oss.ListObjectsV2Request{
		Bucket: oss.Ptr(s.BucketName),
		Prefix: oss.Ptr(prefix),
	})
	for p.HasNext() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errs.Blob("list", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}
