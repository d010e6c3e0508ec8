package router

import (
	"net/http"
	"strings"

	"cart-sync/internal/handler"
	"cart-sync/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(cartHandler *handler.CartHandler, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cart root: GET fetches, DELETE clears
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cart/" {
			cartRouteHandler(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	// Item routes
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			cartHandler.AddItem(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	mux.HandleFunc("/api/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/cart/items/") || r.URL.Path == "/api/cart/items/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodPut:
			cartHandler.UpdateItem(w, r)
		case http.MethodDelete:
			cartHandler.RemoveItem(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Coupon routes
	mux.HandleFunc("/api/cart/coupon", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cartHandler.ApplyCoupon(w, r)
		case http.MethodDelete:
			cartHandler.RemoveCoupon(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	if apiKey != "" {
		h = middleware.APIKeyAuth(apiKey, logger)(h)
	}
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
