package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"inspection-app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore membuat koneksi ke MinIO dan memastikan bucket ada.
func NewMinioStore() (*MinioStore, error) {
	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: config.MinioBucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.publicURL(objectKey), nil
}

// Remove menghapus object satu per satu, best-effort.
// Kegagalan di satu object tidak menghentikan object berikutnya.
func (s *MinioStore) Remove(ctx context.Context, objectKeys []string) error {
	var lastErr error
	for _, key := range objectKeys {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			log.Println("Warning: failed to remove object", key, ":", err)
			lastErr = err
		}
	}
	return lastErr
}

func (s *MinioStore) publicURL(objectKey string) string {
	if config.MinioPublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", config.MinioPublicURL, s.bucket, objectKey)
	}
	scheme := "http"
	if config.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, config.MinioEndpoint, s.bucket, objectKey)
}
