package router

import (
	"net/http"
	"strings"

	"foodpoint/app/controller"
	"foodpoint/app/middleware"
)

type Controllers struct {
	FoodItem *controller.FoodItemController
	Order    *controller.OrderController
	Sales    *controller.SalesController
	Upload   *controller.UploadController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Prometheus metrics
	mux.Handle("/metrics", middleware.MetricsHandler())

	// Food items routes
	mux.HandleFunc("/api/food-items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.FoodItem.CreateFoodItem(w, r)
		} else if r.Method == http.MethodGet {
			controllers.FoodItem.ListFoodItems(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Menu list and food item by id
	mux.HandleFunc("/api/food-items/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/food-items/menu" {
			controllers.FoodItem.ListFoodItems(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.FoodItem.GetFoodItem(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.FoodItem.DeleteFoodItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Orders routes
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Order.CreateOrder(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Order.ListOrders(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Pending list, payment, bill and order by id
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/api/orders/pending" {
			controllers.Order.ListPendingOrders(w, r)
			return
		}
		if strings.HasSuffix(path, "/payment-done") {
			controllers.Order.MarkPaid(w, r)
			return
		}
		if strings.HasSuffix(path, "/bill") {
			controllers.Order.GetBill(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			controllers.Order.GetOrder(w, r)
		case http.MethodPut:
			controllers.Order.UpdateOrder(w, r)
		case http.MethodDelete:
			controllers.Order.DeleteOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Sales routes
	mux.HandleFunc("/api/sales", controllers.Sales.Sales)
	mux.HandleFunc("/api/sales/today", controllers.Sales.TodaySales)
	mux.HandleFunc("/api/sales/monthly", controllers.Sales.MonthlySales)
	mux.HandleFunc("/api/sales/total", controllers.Sales.TotalSales)
	mux.HandleFunc("/api/sales/recent", controllers.Sales.RecentSales)
	mux.HandleFunc("/api/sales/trend", controllers.Sales.SalesTrend)

	// Uploaded images
	mux.HandleFunc("/uploads/", controllers.Upload.GetImage)
}
