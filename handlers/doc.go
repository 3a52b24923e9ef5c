// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls app.

# Handler Types

Each handler is a struct with a QuestionStore and config:

  - PollHandler: public pages (index, detail, results, vote)
  - AdminHandler: question and choice management

	pollHandler := handlers.NewPollHandler(store.New(db), cfg)

# Publication

A question is visible once its pub_date is at or before the request time.
Future questions are left out of the index, and their detail, results and
vote endpoints answer 404 as if they did not exist.

The index marks questions published within the last day as new.

# Voting

	POST /polls/{id}/vote  choice=<choice id>

A successful vote redirects (303) to the results page. A missing or foreign
choice re-renders the detail page with an error message.

# Admin API

	POST /admin/questions              → CreateQuestion (returns admin_key)
	POST /admin/questions/{id}/choices → AddChoice
	GET  /admin/questions/{id}         → GetQuestion

Admin operations other than creation require the X-Admin-Key header.

# Rendering

Pages are html/template files embedded from templates/. Index and detail
answer with JSON when the request sends Accept: application/json.
*/
package handlers
