// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/polls/models"
)

// ErrNotFound is returned when a question or choice does not exist, or when
// a question is not published yet.
var ErrNotFound = errors.New("not found")

// Store reads and writes questions and choices.
//
// Every timestamp is bound in UTC so that text-backed SQLite columns compare
// the same way native timestamp columns do.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListPublished returns every question with pub_date <= now, most recent first.
func (s *Store) ListPublished(ctx context.Context, now time.Time) ([]models.Question, error) {
	const query = `
SELECT id, question_text, pub_date
FROM question
WHERE pub_date <= $1
ORDER BY pub_date DESC, id
`

	rows, err := s.db.QueryContext(ctx, query, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("ListPublished: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("ListPublished: Scan: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPublished: rows.Err: %w", err)
	}

	return questions, nil
}

// GetPublished returns the question only if it is visible at now. Future
// questions are reported as ErrNotFound, same as missing ones.
func (s *Store) GetPublished(ctx context.Context, id string, now time.Time) (models.Question, error) {
	const query = `
SELECT id, question_text, pub_date
FROM question
WHERE id = $1 AND pub_date <= $2
`

	var q models.Question
	err := s.db.QueryRowContext(ctx, query, id, now.UTC()).Scan(&q.ID, &q.QuestionText, &q.PubDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("GetPublished: Scan: %w", err)
	}

	return q, nil
}

// Get returns the question regardless of its pub_date.
func (s *Store) Get(ctx context.Context, id string) (models.Question, error) {
	const query = `
SELECT id, question_text, pub_date
FROM question
WHERE id = $1
`

	var q models.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.QuestionText, &q.PubDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("Get: Scan: %w", err)
	}

	return q, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertQuestion(ctx context.Context, ex execer, q *models.Question) error {
	const query = `
INSERT INTO question (id, question_text, pub_date)
VALUES ($1, $2, $3)
`

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.PubDate = q.PubDate.UTC()

	_, err := ex.ExecContext(ctx, query, q.ID, q.QuestionText, q.PubDate)
	return err
}

func insertChoice(ctx context.Context, ex execer, c *models.Choice) error {
	const query = `
INSERT INTO choice (id, question_id, choice_text, votes)
VALUES ($1, $2, $3, $4)
`

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := ex.ExecContext(ctx, query, c.ID, c.QuestionID, c.ChoiceText, c.Votes)
	return err
}

// Create inserts the question, assigning an ID when it has none.
func (s *Store) Create(ctx context.Context, q *models.Question) error {
	if err := insertQuestion(ctx, s.db, q); err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	return nil
}

// CreateWithChoices inserts the question and its initial choices in one
// transaction. On any error nothing is stored.
func (s *Store) CreateWithChoices(ctx context.Context, q *models.Question, choiceTexts []string) ([]models.Choice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateWithChoices: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertQuestion(ctx, tx, q); err != nil {
		return nil, fmt.Errorf("CreateWithChoices: insert question: %w", err)
	}

	choices := make([]models.Choice, 0, len(choiceTexts))
	for _, text := range choiceTexts {
		c := models.Choice{QuestionID: q.ID, ChoiceText: text}
		if err := insertChoice(ctx, tx, &c); err != nil {
			return nil, fmt.Errorf("CreateWithChoices: insert choice: %w", err)
		}
		choices = append(choices, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateWithChoices: Commit: %w", err)
	}

	return choices, nil
}

// AddChoice inserts a choice for an existing question.
func (s *Store) AddChoice(ctx context.Context, c *models.Choice) error {
	if err := insertChoice(ctx, s.db, c); err != nil {
		return fmt.Errorf("AddChoice: ExecContext: %w", err)
	}
	return nil
}

// ListChoices returns the choices of a question in display order.
func (s *Store) ListChoices(ctx context.Context, questionID string) ([]models.Choice, error) {
	const query = `
SELECT id, question_id, choice_text, votes
FROM choice
WHERE question_id = $1
ORDER BY choice_text, id
`

	rows, err := s.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("ListChoices: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("ListChoices: Scan: %w", err)
		}
		choices = append(choices, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListChoices: rows.Err: %w", err)
	}

	return choices, nil
}

// Vote adds one vote to the choice. The increment happens in the database so
// concurrent votes are never lost.
func (s *Store) Vote(ctx context.Context, questionID, choiceID string) error {
	const query = `
UPDATE choice
SET votes = votes + 1
WHERE id = $1 AND question_id = $2
`

	res, err := s.db.ExecContext(ctx, query, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("Vote: ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Vote: RowsAffected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
