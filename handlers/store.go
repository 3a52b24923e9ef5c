// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"time"

	"github.com/danielhkuo/polls/models"
)

// QuestionStore is the persistence the handlers need. *store.Store implements it.
type QuestionStore interface {
	ListPublished(ctx context.Context, now time.Time) ([]models.Question, error)
	GetPublished(ctx context.Context, id string, now time.Time) (models.Question, error)
	Get(ctx context.Context, id string) (models.Question, error)
	CreateWithChoices(ctx context.Context, q *models.Question, choiceTexts []string) ([]models.Choice, error)
	AddChoice(ctx context.Context, c *models.Choice) error
	ListChoices(ctx context.Context, questionID string) ([]models.Choice, error)
	Vote(ctx context.Context, questionID, choiceID string) error
}
