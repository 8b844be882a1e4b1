package api

import (
	"database/sql"
	"net/http"
	"time"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, tokenTTL time.Duration) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
	productsHandler := &ProductsHandler{DB: db}
	ordersHandler := &OrdersHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Service endpoints.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "Welcome to TimberPunk API",
			"version": "1.0.0",
		})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Auth.
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("GET /auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Catalog: read public, write admin-only.
	mux.HandleFunc("GET /products", productsHandler.List)
	mux.HandleFunc("GET /products/{id}", productsHandler.Get)
	mux.HandleFunc("GET /products/{id}/image", productsHandler.GetImage)
	mux.Handle("POST /products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("PUT /products/{id}", authMW(http.HandlerFunc(productsHandler.Update)))
	mux.Handle("DELETE /products/{id}", authMW(http.HandlerFunc(productsHandler.Delete)))
	mux.Handle("PUT /products/{id}/image", authMW(http.HandlerFunc(productsHandler.UploadImage)))

	// Orders: checkout public, management admin-only.
	mux.HandleFunc("POST /orders", ordersHandler.Create)
	mux.Handle("GET /orders", authMW(http.HandlerFunc(ordersHandler.List)))
	mux.Handle("GET /orders/{id}", authMW(http.HandlerFunc(ordersHandler.Get)))
	mux.Handle("PATCH /orders/{id}", authMW(http.HandlerFunc(ordersHandler.UpdateStatus)))
	mux.Handle("DELETE /orders/{id}", authMW(http.HandlerFunc(ordersHandler.Delete)))

	return mux
}
