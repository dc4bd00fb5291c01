package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"historical-portrait-server/modules/common/config"
	"historical-portrait-server/modules/common/events"
	"historical-portrait-server/modules/portrait"
)

// enableCORS - CORS middleware for the browser client
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthCheck - liveness endpoint
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "historical-portrait-server",
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Shared state is constructed once here and injected; the store owns the
	// only mutable table in the process
	store := portrait.NewMemStore()

	service, err := portrait.NewService()
	if err != nil {
		log.Fatalf("❌ Failed to init portrait service: %v", err)
	}

	hub := events.NewHub()

	handler := portrait.NewPortraitHandler(store, service, hub)

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWebSocket)
	handler.RegisterRoutes(r)

	log.Printf("🚀 Historical Portrait Server starting on port %s", cfg.Port)
	log.Printf("🎖️  Generate endpoint: http://localhost:%s/generate-portrait", cfg.Port)
	log.Printf("📡 Live gallery feed: ws://localhost:%s/ws", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
