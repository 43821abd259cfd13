package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// MaxImageBytes bounds any image accepted from an upload or from Drive
const MaxImageBytes = 10 << 20

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

// DownloadImage downloads an image file from Google Drive
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, string, error) {
	meta, err := ds.client.Files.Get(fileID).Fields("id, name, mimeType, size").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch drive file metadata: %w", err)
	}
	if !imageMimeTypes[strings.ToLower(meta.MimeType)] {
		return nil, "", fmt.Errorf("drive file %s is not an image (mimeType=%s)", fileID, meta.MimeType)
	}
	if meta.Size > MaxImageBytes {
		return nil, "", fmt.Errorf("drive file %s is too large (%d bytes)", fileID, meta.Size)
	}

	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("failed to download drive file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read drive file: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("drive file %s is too large", fileID)
	}

	log.Printf("✓ Downloaded drive file %s (%s, %d bytes)", fileID, meta.Name, len(data))
	return data, meta.Name, nil
}
