package models

// FoodItem represents a menu entry in the database
type FoodItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// CreateFoodItemRequest represents the multipart form sent to create a food item.
// The image itself travels as the "image" file part and is stored before the row
// is inserted, so only the resulting URL reaches the repository.
// Example form: name=Masala Dosa, category=South Indian, price=80, image=<file>
type CreateFoodItemRequest struct {
	Name        string
	Category    string
	Price       float64
	ImageURL    string
	DriveFileID string
}
