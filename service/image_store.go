package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"foodpoint/utils"
)

const (
	// UploadURLPrefix is the public path stored images are served under
	UploadURLPrefix = "/uploads/"
	cacheSubdir     = "cache"
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 80
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
	// Source images larger than this are refused before decoding
	maxSourceDimension = 10000
	maxSourcePixels    = 40_000_000
)

// ErrImageNotFound is returned when a requested upload does not exist
var ErrImageNotFound = errors.New("image not found")

// ImageStore keeps food item images on local disk
type ImageStore struct {
	dir string
}

// NewImageStore ensures the upload and cache directories exist
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(filepath.Join(dir, cacheSubdir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory images are stored in
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save optimizes an uploaded image and writes it as <uuid>_<name>.jpg.
// Returns the public URL, e.g. "/uploads/2f1c..._masala-dosa.jpg".
func (s *ImageStore) Save(originalName string, data []byte) (string, error) {
	optimized, err := OptimizeImage(data, "medium")
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_%s.jpg", uuid.NewString(), utils.SanitizeFileName(originalName))
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, optimized, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	log.Printf("✓ Image stored: %s (%d bytes)", path, len(optimized))
	return UploadURLPrefix + fileName, nil
}

// resolve maps a stored file name to its path, refusing anything that is not
// a plain file name inside the upload directory
func (s *ImageStore) resolve(fileName string) (string, error) {
	if fileName == "" || fileName != filepath.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return "", ErrImageNotFound
	}
	return filepath.Join(s.dir, fileName), nil
}

// Read returns the stored image, or a cached thumbnail when size is "thumb"
func (s *ImageStore) Read(fileName, size string) ([]byte, error) {
	path, err := s.resolve(fileName)
	if err != nil {
		return nil, err
	}

	if size != "thumb" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, ErrImageNotFound
			}
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return data, nil
	}

	cachePath := s.thumbPath(fileName)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	original, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	thumb, err := OptimizeImage(original, "thumb")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cachePath, thumb, 0644); err != nil {
		// Serving still works without the cache
		log.Printf("⚠️ Failed to cache thumbnail %s: %v", cachePath, err)
	}
	return thumb, nil
}

func (s *ImageStore) thumbPath(fileName string) string {
	return filepath.Join(s.dir, cacheSubdir, strings.TrimSuffix(fileName, filepath.Ext(fileName))+"_thumb.jpg")
}

// Remove deletes a stored image and its cached thumbnail.
// URLs that do not point into the store are ignored.
func (s *ImageStore) Remove(imageURL string) error {
	if !strings.HasPrefix(imageURL, UploadURLPrefix) {
		return nil
	}
	fileName := strings.TrimPrefix(imageURL, UploadURLPrefix)
	path, err := s.resolve(fileName)
	if err != nil {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if err := os.Remove(s.thumbPath(fileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ Failed to delete thumbnail for %s: %v", fileName, err)
	}
	return nil
}

// OptimizeImage optimizes an image by converting to JPEG and resizing
// imageData: raw image bytes (PNG, JPEG, GIF)
// size: "thumb" or "medium"
// Returns optimized JPEG image bytes
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width > maxSourceDimension || cfg.Height > maxSourceDimension ||
		int64(cfg.Width)*int64(cfg.Height) > maxSourcePixels {
		return nil, fmt.Errorf("image dimensions %dx%d are too large", cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		// Fit keeps the aspect ratio
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("📸 Image optimized: format=%s, %dx%d -> %dx%d, size=%s, output=%d bytes",
		format, bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy(), size, buf.Len())
	return buf.Bytes(), nil
}
