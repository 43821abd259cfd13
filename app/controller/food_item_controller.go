package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/repository"
	"foodpoint/service"
)

const foodItemsPath = "/api/food-items/"

// FoodItemController handles HTTP requests for menu items
type FoodItemController struct {
	repository repository.FoodItemRepositoryInterface
	images     *service.ImageStore
	drive      service.DriveServiceInterface // nil when Drive import is not configured
}

// NewFoodItemController creates a new FoodItemController
func NewFoodItemController(repo repository.FoodItemRepositoryInterface, images *service.ImageStore, drive service.DriveServiceInterface) *FoodItemController {
	return &FoodItemController{
		repository: repo,
		images:     images,
		drive:      drive,
	}
}

// CreateFoodItem handles POST /api/food-items
// Multipart form fields: name, category, price, image (file, optional), driveFileId (optional)
// Example response:
// {
//   "id": 4,
//   "name": "Masala Dosa",
//   "category": "South Indian",
//   "price": 80,
//   "imageUrl": "/uploads/2f1c..._masala-dosa.jpg",
//   "createdAt": "2026-01-04T10:30:00Z"
// }
func (c *FoodItemController) CreateFoodItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateFoodItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateFoodItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Leave room for the other form fields on top of the image
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(service.MaxImageBytes); err != nil {
		log.Printf("❌ CreateFoodItem: Failed to parse form: %v", err)
		http.Error(w, fmt.Sprintf("Invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	req := models.CreateFoodItemRequest{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		DriveFileID: strings.TrimSpace(r.FormValue("driveFileId")),
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		log.Printf("❌ CreateFoodItem: Invalid price: %q", r.FormValue("price"))
		http.Error(w, "price must be a number", http.StatusBadRequest)
		return
	}
	if err := pricing.ValidatePrice(price); err != nil {
		log.Printf("❌ CreateFoodItem: Invalid price %q: %v", r.FormValue("price"), err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Price = price

	ctx := r.Context()
	imageURL, status, err := c.storeImage(ctx, r, req.DriveFileID)
	if err != nil {
		log.Printf("❌ CreateFoodItem: %v", err)
		http.Error(w, err.Error(), status)
		return
	}
	req.ImageURL = imageURL

	item, err := c.repository.Create(ctx, &req)
	if err != nil {
		log.Printf("❌ CreateFoodItem: Error creating food item: %v", err)
		if imageURL != "" {
			if rmErr := c.images.Remove(imageURL); rmErr != nil {
				log.Printf("⚠️ CreateFoodItem: Failed to remove orphaned image %s: %v", imageURL, rmErr)
			}
		}
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create food item: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CreateFoodItem: Successfully created food item id=%d", item.ID)
	writeJSON(w, "CreateFoodItem", http.StatusOK, item)
}

// storeImage saves the uploaded image part, or the Drive file when driveFileId is given.
// Returns an empty URL when the item has no image.
func (c *FoodItemController) storeImage(ctx context.Context, r *http.Request, driveFileID string) (string, int, error) {
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
		if err != nil {
			return "", http.StatusBadRequest, fmt.Errorf("failed to read image: %w", err)
		}
		if len(data) > service.MaxImageBytes {
			return "", http.StatusBadRequest, fmt.Errorf("image must be at most %d MiB", service.MaxImageBytes>>20)
		}
		url, err := c.images.Save(header.Filename, data)
		if err != nil {
			return "", http.StatusBadRequest, fmt.Errorf("invalid image: %w", err)
		}
		return url, http.StatusOK, nil

	case !errors.Is(err, http.ErrMissingFile):
		return "", http.StatusBadRequest, fmt.Errorf("invalid image part: %w", err)
	}

	if driveFileID == "" {
		return "", http.StatusOK, nil
	}
	if c.drive == nil {
		return "", http.StatusBadRequest, errors.New("Google Drive import is not configured")
	}

	data, name, err := c.drive.DownloadImage(ctx, driveFileID)
	if err != nil {
		return "", http.StatusBadGateway, fmt.Errorf("failed to import image from Drive: %w", err)
	}
	url, err := c.images.Save(name, data)
	if err != nil {
		return "", http.StatusBadRequest, fmt.Errorf("invalid image: %w", err)
	}
	return url, http.StatusOK, nil
}

// ListFoodItems handles GET /api/food-items?category=Beverages
func (c *FoodItemController) ListFoodItems(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListFoodItems: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListFoodItems: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var category *string
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		category = &v
	}

	items, err := c.repository.List(r.Context(), category)
	if err != nil {
		log.Printf("❌ ListFoodItems: Error fetching food items: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch food items: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListFoodItems: Successfully fetched %d food items", len(items))
	writeJSON(w, "ListFoodItems", http.StatusOK, items)
}

// GetFoodItem handles GET /api/food-items/{id}
func (c *FoodItemController) GetFoodItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetFoodItem: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := parseID(r.URL.Path, foodItemsPath, "")
	if !ok {
		http.Error(w, "invalid food item id parameter", http.StatusBadRequest)
		return
	}

	item, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ GetFoodItem: %v", err)
		if errors.Is(err, repository.ErrFoodItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch food item: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, "GetFoodItem", http.StatusOK, item)
}

// DeleteFoodItem handles DELETE /api/food-items/{id}
// The stored image is removed best-effort; a leftover file never fails the request.
func (c *FoodItemController) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteFoodItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodDelete {
		log.Printf("❌ DeleteFoodItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseID(r.URL.Path, foodItemsPath, "")
	if !ok {
		http.Error(w, "invalid food item id parameter", http.StatusBadRequest)
		return
	}

	item, err := c.repository.Delete(r.Context(), id)
	if err != nil {
		log.Printf("❌ DeleteFoodItem: %v", err)
		if errors.Is(err, repository.ErrFoodItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete food item: %v", err), http.StatusInternalServerError)
		return
	}

	if item.ImageURL != "" {
		if err := c.images.Remove(item.ImageURL); err != nil {
			log.Printf("⚠️ DeleteFoodItem: Failed to delete image %s: %v", item.ImageURL, err)
		}
	}

	log.Printf("✅ DeleteFoodItem: Successfully deleted food item id=%d", id)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Food item deleted successfully"))
}
