package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/greenbasket/shop-backend/app/catalog"
	"github.com/greenbasket/shop-backend/app/categories"
	"github.com/greenbasket/shop-backend/app/orders"
	"github.com/greenbasket/shop-backend/config"
	"github.com/greenbasket/shop-backend/database"
	"github.com/greenbasket/shop-backend/models"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	ordersRepo := models.NewOrdersRepository(db)

	categoriesHandler := categories.NewCategoryHandler(categoriesRepo)
	catalogHandler := catalog.NewCatalogHandler(productsRepo, categoriesRepo)
	ordersHandler := orders.NewOrdersHandler(ordersRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /categories", categoriesHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoriesHandler.HandleCreate)
	mux.HandleFunc("GET /categories/{slug}", categoriesHandler.HandleGetBySlug)

	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("POST /catalog", catalogHandler.HandleCreate)
	mux.HandleFunc("GET /catalog/{slug}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("PUT /catalog/{slug}", catalogHandler.HandleUpdate)
	mux.HandleFunc("DELETE /catalog/{slug}", catalogHandler.HandleDelete)

	mux.HandleFunc("POST /orders", ordersHandler.HandleCreate)
	mux.HandleFunc("GET /orders", ordersHandler.HandleGetAll)
	mux.HandleFunc("GET /orders/{number}", ordersHandler.HandleGetOrder)
	mux.HandleFunc("POST /orders/{number}/items", ordersHandler.HandleAddItem)
	mux.HandleFunc("PUT /orders/{number}/items/{id}", ordersHandler.HandleUpdateItem)
	mux.HandleFunc("DELETE /orders/{number}/items/{id}", ordersHandler.HandleRemoveItem)
	mux.HandleFunc("POST /orders/{number}/status", ordersHandler.HandleUpdateStatus)
	mux.HandleFunc("POST /orders/{number}/recalculate", ordersHandler.HandleRecalculate)

	logger.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, requestLog(logger, mux)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
