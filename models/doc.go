// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the polls app.

# Domain Types

  - Question: question text and publication date
  - Choice: an answer to a question with its vote count
  - QuestionWithChoices: admin view of a question
  - IndexContext: data behind the index page (latest_question_list)

# Publication Rules

A question is visible once its pub_date is not in the future:

	q.IsPublished(now)

It was published recently when pub_date falls in the last day, future dates
excluded:

	q.WasPublishedRecently(now) // now-24h < pub_date <= now

# Request and Response Types

  - CreateQuestionRequest: question_text, pub_date, choices
  - CreateQuestionResponse: question_id, admin_key
  - AddChoiceRequest: choice_text
  - AddChoiceResponse: choice_id
  - ErrorResponse: error, message
*/
package models
