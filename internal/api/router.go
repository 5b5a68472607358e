package api

import (
	"net/http"
	"strings"
)

func NewRouter(handlers *Handlers) http.Handler {
	mux := http.NewServeMux()

	// Simple-order read paths
	mux.HandleFunc("/api/v1/simple-orders", methodGet(handlers.SimpleOrdersV1))
	mux.HandleFunc("/api/v2/simple-orders", methodGet(handlers.SimpleOrdersV2))
	mux.HandleFunc("/api/v3/simple-orders", methodGet(handlers.SimpleOrdersV3))
	mux.HandleFunc("/api/v4/simple-orders", methodGet(handlers.SimpleOrdersV4))

	// Members
	mux.HandleFunc("/members/new", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.JoinMember(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/members", methodGet(handlers.GetMembers))

	// Items
	mux.HandleFunc("/items/new", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.NewItemForm(w, r)
		case http.MethodPost:
			handlers.CreateItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/items", methodGet(handlers.GetItems))
	mux.HandleFunc("/items/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/edit") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			handlers.EditItemForm(w, r)
		case http.MethodPost:
			handlers.UpdateItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Orders
	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.PlaceOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/orders", methodGet(handlers.GetOrders))
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/cancel") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPost:
			handlers.CancelOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

func methodGet(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
