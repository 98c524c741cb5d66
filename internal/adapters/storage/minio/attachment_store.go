// Package minio stores listing attachments in S3-compatible object storage.
// Each listing has at most one image, stored under "<listingID>.<ext>" so
// lookups and deletes need no extra indirection.
package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	portsrepo "github.com/kassilabs/kassi_backend/internal/core/ports/repositories"
)

// allowedExtensions maps the accepted image content types to the object-key
// extension they are stored under.
var allowedExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
}

type AttachmentStore struct {
	client *minio.Client
	bucket string
}

// Config holds the connection settings for the attachment bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewAttachmentStore connects to the object storage endpoint and ensures the
// attachment bucket exists.
func NewAttachmentStore(ctx context.Context, cfg Config) (*AttachmentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client for %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make or verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &AttachmentStore{client: client, bucket: cfg.Bucket}, nil
}

var _ portsrepo.AttachmentStore = (*AttachmentStore)(nil)

// Supports reports whether the content type is on the image allow-list.
func (s *AttachmentStore) Supports(contentType string) bool {
	_, ok := allowedExtensions[contentType]
	return ok
}

// Store uploads the image under "<listingID>.<ext>" and returns that key. A
// content type outside the allow-list is rejected before any write. MinIO
// uploads objects atomically, so a failed PutObject leaves no partial object
// behind.
func (s *AttachmentStore) Store(ctx context.Context, listingID string, data []byte, contentType string) (string, error) {
	ext, ok := allowedExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedMedia, contentType)
	}

	key := fmt.Sprintf("%s.%s", listingID, ext)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment %s: %w", key, err)
	}
	return key, nil
}

// Delete removes the listing's stored image if present. The extension is not
// known at delete time, so every allowed key variant is removed; RemoveObject
// on a missing key is a no-op, which makes deleting a listing without an
// attachment succeed as required.
func (s *AttachmentStore) Delete(ctx context.Context, listingID string) error {
	for _, ext := range allowedExtensions {
		key := fmt.Sprintf("%s.%s", listingID, ext)
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove attachment %s: %w", key, err)
		}
	}
	return nil
}
