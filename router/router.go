// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/handlers"
	"github.com/danielhkuo/polls/middleware"
)

func NewRouter(store handlers.QuestionStore, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(store, cfg)
	adminHandler := handlers.NewAdminHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Public poll pages
	mux.HandleFunc("GET /polls", middleware.Instrument(pollHandler.Index))
	mux.HandleFunc("GET /polls/{id}", middleware.Instrument(pollHandler.Detail))
	mux.HandleFunc("GET /polls/{id}/results", middleware.Instrument(pollHandler.Results))
	mux.HandleFunc("POST /polls/{id}/vote", middleware.Instrument(pollHandler.Vote))

	// Question management (requires X-Admin-Key except for creation)
	mux.HandleFunc("POST /admin/questions", middleware.Instrument(adminHandler.CreateQuestion))
	mux.HandleFunc("GET /admin/questions/{id}", middleware.Instrument(adminHandler.GetQuestion))
	mux.HandleFunc("POST /admin/questions/{id}/choices", middleware.Instrument(adminHandler.AddChoice))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls", http.StatusFound)
	})

	return middleware.CORS(mux)
}
