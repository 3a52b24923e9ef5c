// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls app.

# Route Registration

NewRouter creates a configured handler with all endpoints, wrapped in CORS:

	handler := router.NewRouter(store.New(conn), cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Poll pages (public, HTML; index and detail also serve JSON on Accept: application/json):

	GET  /polls              - Published questions, most recent first
	GET  /polls/{id}         - Question with its choices (404 until published)
	GET  /polls/{id}/results - Vote counts
	POST /polls/{id}/vote    - Count a vote, redirect to results

Question management (JSON, requires X-Admin-Key except for creation):

	POST /admin/questions              - Create question, returns admin key
	GET  /admin/questions/{id}         - Question and choices, any pub_date
	POST /admin/questions/{id}/choices - Add a choice

GET / redirects to /polls.
*/
package router
