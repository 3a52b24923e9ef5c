// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
)

// TestDBURL is the connection string for the test database. Every Open gets
// its own private in-memory database.
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestQuestion publishes a question offset by the given number of days
// from now (negative for questions published in the past, positive for
// questions that have yet to be published)
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, days int) models.Question {
	t.Helper()

	q := models.Question{
		QuestionText: text,
		PubDate:      time.Now().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := store.New(conn).Create(context.Background(), &q); err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return q
}

// AddTestChoice adds a choice with an initial vote count to a question
func AddTestChoice(t *testing.T, conn *sql.DB, questionID, text string, votes int) models.Choice {
	t.Helper()

	c := models.Choice{QuestionID: questionID, ChoiceText: text, Votes: votes}
	if err := store.New(conn).AddChoice(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return c
}

// RejectChoiceText makes every insert of a choice with the given text fail,
// so tests can break a write halfway through
func RejectChoiceText(t *testing.T, conn *sql.DB, text string) {
	t.Helper()

	const trigger = `
CREATE TRIGGER reject_choice_text BEFORE INSERT ON choice
WHEN NEW.choice_text = '%s'
BEGIN
	SELECT RAISE(ABORT, 'choice rejected');
END
`
	if _, err := conn.Exec(fmt.Sprintf(trigger, strings.ReplaceAll(text, "'", "''"))); err != nil {
		t.Fatalf("Failed to install choice trigger: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a URL-encoded form POST
func MakeFormRequest(path string, form map[string]string) *http.Request {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks for a 200 response whose body contains text
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, text string) {
	t.Helper()
	AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), text) {
		t.Errorf("Expected body to contain %q. Body: %s", text, w.Body.String())
	}
}

// AssertNotContains checks that the body does not contain text
func AssertNotContains(t *testing.T, w *httptest.ResponseRecorder, text string) {
	t.Helper()
	if strings.Contains(w.Body.String(), text) {
		t.Errorf("Expected body not to contain %q. Body: %s", text, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	body, _ := io.ReadAll(w.Body)
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, body)
	}
}
