package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Image formats accepted for product uploads.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AllowedImageExt reports whether filename has an accepted image extension.
func AllowedImageExt(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// ImageStore stores product images in a MinIO bucket and hands back public
// URLs for the stored objects.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewImageStore connects to MinIO and makes sure the image bucket exists.
func NewImageStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return &ImageStore{
		client:   client,
		endpoint: endpoint,
		bucket:   bucket,
		useSSL:   useSSL,
	}, nil
}

// UploadImage streams an uploaded file into the bucket under a fresh object
// name and returns the public URL to store on the product.
func (s *ImageStore) UploadImage(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.objectURL(objectName), nil
}

func (s *ImageStore) objectURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}
