package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	shared "github.com/fitglue/bodymap/pkg"
)

// StorageAdapter provides blob storage operations using Google Cloud Storage
type StorageAdapter struct {
	Client *storage.Client
}

// NewStorageAdapter creates a GCS client. endpoint overrides the API
// endpoint (e.g. a local emulator) when set.
func NewStorageAdapter(ctx context.Context, endpoint string) (*StorageAdapter, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &StorageAdapter{Client: client}, nil
}

// Write stores data, deriving the content type from the object extension.
func (a *StorageAdapter) Write(ctx context.Context, bucketName, objectName string, data []byte) error {
	wc := a.Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = ContentType(objectName)
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func (a *StorageAdapter) Read(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	rc, err := a.Client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucketName, objectName, shared.ErrNotFound)
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ContentType returns the MIME type for an object name.
func ContentType(objectName string) string {
	switch ext := path.Ext(objectName); ext {
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

// PublicURL builds the public URL of an object: baseURL/object when a custom
// assets domain is configured, otherwise the raw GCS URL.
func PublicURL(baseURL, bucketName, objectName string) string {
	if baseURL != "" {
		return fmt.Sprintf("%s/%s", baseURL, objectName)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)
}
