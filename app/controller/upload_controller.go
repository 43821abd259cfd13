package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"foodpoint/service"
)

// UploadController serves stored food item images
type UploadController struct {
	images *service.ImageStore
}

// NewUploadController creates a new UploadController
func NewUploadController(images *service.ImageStore) *UploadController {
	return &UploadController{
		images: images,
	}
}

// GetImage handles GET /uploads/{file}?size=thumb
// Without size the stored (800px) image is returned; thumb returns a cached 300px version.
func (c *UploadController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileName := strings.TrimPrefix(r.URL.Path, service.UploadURLPrefix)
	size := r.URL.Query().Get("size")
	if size != "" && size != "thumb" {
		http.Error(w, "Invalid size parameter. Must be 'thumb'", http.StatusBadRequest)
		return
	}

	data, err := c.images.Read(fileName, size)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetImage: Error reading %s: %v", fileName, err)
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write(data)
	}
}
