package models

import "time"

// RecentWindow is how far back a question still counts as recently published.
const RecentWindow = 24 * time.Hour

// Empty-state and form messages rendered by the poll pages
const (
	MsgNoPolls  = "No polls are available."
	MsgNoChoice = "You didn't select a choice."
)

// Request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"` // defaults to now; may be in the future
	Choices      []string   `json:"choices,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
	AdminKey   string `json:"admin_key"`
}

type AddChoiceResponse struct {
	ChoiceID string `json:"choice_id"`
}

// Domain types

type Question struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

// WasPublishedRecently reports whether PubDate lies in (now-24h, now].
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.PubDate.After(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

// IsPublished reports whether the question is visible at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

type QuestionWithChoices struct {
	Question             Question `json:"question"`
	Choices              []Choice `json:"choices"`
	WasPublishedRecently bool     `json:"was_published_recently"`
}

// IndexContext is what the index page renders; it is also served as JSON.
type IndexContext struct {
	LatestQuestionList []Question `json:"latest_question_list"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
