package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// BlobStore keeps each key as a JSON blob in an Azure Blob Storage container
type BlobStore struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewBlobStore creates a BlobStore authenticated with a shared key
func NewBlobStore(accountName, accountKey, containerName string, logger *zap.Logger) (*BlobStore, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &BlobStore{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

func blobName(key string) string {
	return fmt.Sprintf("state/%s.json", key)
}

// Get downloads the blob for key
func (s *BlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	name := blobName(key)

	resp, err := s.client.DownloadStream(ctx, s.containerName, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return "", false, nil
		}
		s.logger.Error("failed to download state blob",
			zap.String("blob_name", name),
			zap.Error(err),
		)
		return "", false, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return string(data), true, nil
}

// Set uploads value as the blob for key
func (s *BlobStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	name := blobName(key)

	_, err := s.client.UploadBuffer(ctx, s.containerName, name, []byte(value), &azblob.UploadBufferOptions{
		Metadata: map[string]*string{
			"contenttype": toPtr("application/json"),
		},
	})
	if err != nil {
		s.logger.Error("failed to upload state blob",
			zap.String("blob_name", name),
			zap.Error(err),
		)
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	s.logger.Debug("state blob uploaded",
		zap.String("blob_name", name),
		zap.Int("size_bytes", len(value)),
	)

	return nil
}

// Delete removes the blob for key
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	name := blobName(key)

	_, err := s.client.DeleteBlob(ctx, s.containerName, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	return nil
}

// Ping checks that the container is reachable
func (s *BlobStore) Ping(ctx context.Context) error {
	_, err := s.client.ServiceClient().NewContainerClient(s.containerName).GetProperties(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to reach container %s: %w", s.containerName, err)
	}
	return nil
}

func toPtr(s string) *string {
	return &s
}
