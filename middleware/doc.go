// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap route handlers with the standard chain:

	mux.HandleFunc("GET /polls", middleware.Instrument(handler))

WithLogging logs completion (method, route, path, status, duration_ms) at
info, warn for 4xx or error for 5xx, and request start with the client IP at
debug level. WithMetrics counts requests
and observes latency in Prometheus, labelled by the matched route pattern.
MetricsHandler serves them:

	mux.Handle("GET /metrics", middleware.MetricsHandler())

# CORS Middleware

Enable cross-origin requests for the admin API:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type, Accept,
X-Admin-Key. A request Origin is echoed back, otherwise the wildcard origin
is used. Credentials are never allowed.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxJSONBody):

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

WantsJSON tells HTML pages when to answer with their context as JSON.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
