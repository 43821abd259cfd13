package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	// DownloadImage returns the file contents and its Drive file name
	DownloadImage(ctx context.Context, fileID string) ([]byte, string, error)
}
