// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polls server.

Polls is a small question-and-answer site. Questions become visible once
their publication date has passed, and visitors pick one choice per vote.

# Starting the Server

The database type defaults to SQLite, so a file path is enough:

	DATABASE_URL=polls.db ADMIN_KEY_SALT=... go run .

Or point it at PostgreSQL:

	go run . -t pgx -d "postgres://..."

# Configuration

Flags win over environment variables. A .env file (-env) fills in variables
that are not already set.

Required settings:

  - DATABASE_URL (-d): Connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - LOG_LEVEL (--log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: HTML poll pages and the JSON admin API
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - store: SQL queries for questions and choices
  - models: Question, Choice and request/response types
  - auth: Admin key generation and validation
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
