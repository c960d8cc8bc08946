package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"licensestore/internal/app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// ArtifactStore хранит дистрибутивы пакетов в бакете MinIO
type ArtifactStore struct {
	client     *minio.Client
	bucketName string
	presignTTL time.Duration
}

// NewArtifactStore создает клиент MinIO и бакет, если его ещё нет
func NewArtifactStore(ctx context.Context, cfg config.MinIOConfig) (*ArtifactStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &ArtifactStore{
		client:     client,
		bucketName: cfg.Bucket,
		presignTTL: ttl,
	}, nil
}

// ObjectName строит имя объекта вида <package>/<uuid><ext>
func ObjectName(packageName, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%s%s", packageName, uuid.New().String(), ext)
}

// ContentType определяет тип по расширению архива
func ContentType(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return "application/gzip"
	case strings.HasSuffix(name, ".zip"):
		return "application/zip"
	case strings.HasSuffix(name, ".tar"):
		return "application/x-tar"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// UploadArtifact загружает дистрибутив пакета и возвращает имя объекта
func (s *ArtifactStore) UploadArtifact(ctx context.Context, packageName, originalFilename string, r io.Reader, size int64) (string, error) {
	object := ObjectName(packageName, originalFilename)

	_, err := s.client.PutObject(ctx, s.bucketName, object, r, size, minio.PutObjectOptions{
		ContentType: ContentType(originalFilename),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	logrus.Infof("Artifact %s uploaded successfully", object)
	return object, nil
}

// DeleteArtifact удаляет объект; используется при замене артефакта пакета
func (s *ArtifactStore) DeleteArtifact(ctx context.Context, object string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, object, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	logrus.Infof("Artifact %s deleted successfully", object)
	return nil
}

// PresignedURL возвращает временную ссылку на скачивание объекта
func (s *ArtifactStore) PresignedURL(ctx context.Context, object string) (string, time.Time, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, object, s.presignTTL, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), time.Now().UTC().Add(s.presignTTL), nil
}
