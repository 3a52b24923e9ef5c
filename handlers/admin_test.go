// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/polls/auth"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
	"github.com/danielhkuo/polls/testutil"
)

func TestCreateQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(store.New(db), cfg)

	future := time.Now().Add(48 * time.Hour)

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid question",
			body:           models.CreateQuestionRequest{QuestionText: "What's new?"},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "with pub_date and choices",
			body: models.CreateQuestionRequest{
				QuestionText: "Scheduled question",
				PubDate:      &future,
				Choices:      []string{"Yes", "No"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing question_text",
			body:           models.CreateQuestionRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank question_text",
			body:           models.CreateQuestionRequest{QuestionText: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "question_text too long",
			body:           models.CreateQuestionRequest{QuestionText: strings.Repeat("x", MaxQuestionText+1)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "multibyte question_text at the limit",
			body:           models.CreateQuestionRequest{QuestionText: strings.Repeat("é", MaxQuestionText)},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "multibyte question_text over the limit",
			body:           models.CreateQuestionRequest{QuestionText: strings.Repeat("é", MaxQuestionText+1)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "multibyte choice under the limit",
			body:           models.CreateQuestionRequest{QuestionText: "Favourite?", Choices: []string{strings.Repeat("日", 150)}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "blank choice",
			body:           models.CreateQuestionRequest{QuestionText: "Question", Choices: []string{"Yes", ""}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/questions", tc.body, nil)
			w := httptest.NewRecorder()

			handler.CreateQuestion(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusCreated {
				var resp models.CreateQuestionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.QuestionID == "" {
					t.Error("Expected question_id in response")
				}
				if err := auth.ValidateAdminKey(resp.QuestionID, resp.AdminKey, cfg.AdminKeySalt); err != nil {
					t.Errorf("Expected valid admin key: %v", err)
				}
			}
		})
	}
}

func TestCreateQuestion_InvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(store.New(db), testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/admin/questions", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.CreateQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCreateQuestion_BodyTooLarge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(store.New(db), testutil.GetTestConfig())

	body := `{"question_text":"` + strings.Repeat("x", middleware.MaxJSONBody) + `"}`
	req := httptest.NewRequest("POST", "/admin/questions", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestCreateQuestion_FailedChoiceLeavesNothingBehind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := store.New(db)
	handler := NewAdminHandler(s, testutil.GetTestConfig())
	testutil.RejectChoiceText(t, db, "b")

	req := testutil.MakeRequest("POST", "/admin/questions", models.CreateQuestionRequest{
		QuestionText: "Q?",
		Choices:      []string{"a", "b"},
	}, nil)
	w := httptest.NewRecorder()
	handler.CreateQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.CreateQuestionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.AdminKey != "" {
		t.Error("Expected no admin key for a failed creation")
	}

	questions, err := s.ListPublished(req.Context(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 0 {
		t.Errorf("Expected no questions left behind, got %+v", questions)
	}
}

func TestCreateQuestion_DefaultsPubDateToNow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := store.New(db)
	handler := NewAdminHandler(s, testutil.GetTestConfig())
	fixed := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	handler.now = func() time.Time { return fixed }

	req := testutil.MakeRequest("POST", "/admin/questions", models.CreateQuestionRequest{QuestionText: "Now?"}, nil)
	w := httptest.NewRecorder()
	handler.CreateQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateQuestionResponse
	testutil.AssertJSON(t, w, &resp)

	q, err := s.Get(req.Context(), resp.QuestionID)
	if err != nil {
		t.Fatal(err)
	}
	if !q.PubDate.Equal(fixed) {
		t.Errorf("Expected pub_date %v, got %v", fixed, q.PubDate)
	}
}

func TestAddChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(store.New(db), cfg)

	// Choices can be added before the question is published
	q := testutil.CreateTestQuestion(t, db, "future question", 3)
	adminKey := auth.GenerateAdminKey(q.ID, cfg.AdminKeySalt)

	testCases := []struct {
		name           string
		questionID     string
		adminKey       string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid choice",
			questionID:     q.ID,
			adminKey:       adminKey,
			body:           models.AddChoiceRequest{ChoiceText: "Not much"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing admin key",
			questionID:     q.ID,
			body:           models.AddChoiceRequest{ChoiceText: "Not much"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong admin key",
			questionID:     q.ID,
			adminKey:       "wrong",
			body:           models.AddChoiceRequest{ChoiceText: "Not much"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty choice_text",
			questionID:     q.ID,
			adminKey:       adminKey,
			body:           models.AddChoiceRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "choice_text too long",
			questionID:     q.ID,
			adminKey:       adminKey,
			body:           models.AddChoiceRequest{ChoiceText: strings.Repeat("y", MaxChoiceText+1)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "multibyte choice_text under the limit",
			questionID:     q.ID,
			adminKey:       adminKey,
			body:           models.AddChoiceRequest{ChoiceText: strings.Repeat("é", 150)},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "multibyte choice_text over the limit",
			questionID:     q.ID,
			adminKey:       adminKey,
			body:           models.AddChoiceRequest{ChoiceText: strings.Repeat("é", MaxChoiceText+1)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown question",
			questionID:     "missing",
			adminKey:       auth.GenerateAdminKey("missing", cfg.AdminKeySalt),
			body:           models.AddChoiceRequest{ChoiceText: "Not much"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.adminKey != "" {
				headers[auth.AdminKeyHeader] = tc.adminKey
			}
			req := testutil.MakeRequest("POST", "/admin/questions/"+tc.questionID+"/choices", tc.body, headers)
			req.SetPathValue("id", tc.questionID)
			w := httptest.NewRecorder()

			handler.AddChoice(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusCreated {
				var resp models.AddChoiceResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ChoiceID == "" {
					t.Error("Expected choice_id in response")
				}
			}
		})
	}
}

func TestGetQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(store.New(db), cfg)

	future := testutil.CreateTestQuestion(t, db, "future question", 30)
	testutil.AddTestChoice(t, db, future.ID, "Later", 0)
	fresh := testutil.CreateTestQuestion(t, db, "fresh question", 0)
	old := testutil.CreateTestQuestion(t, db, "old question", -3)

	testCases := []struct {
		name           string
		question       models.Question
		expectedRecent bool
		expectedCount  int
	}{
		{"future question is visible to its admin", future, false, 1},
		{"question published now is recent", fresh, true, 0},
		{"three day old question is not recent", old, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/admin/questions/"+tc.question.ID, nil, map[string]string{
				auth.AdminKeyHeader: auth.GenerateAdminKey(tc.question.ID, cfg.AdminKeySalt),
			})
			req.SetPathValue("id", tc.question.ID)
			w := httptest.NewRecorder()

			handler.GetQuestion(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.QuestionWithChoices
			testutil.AssertJSON(t, w, &resp)
			if resp.Question.ID != tc.question.ID {
				t.Errorf("Expected question %s, got %s", tc.question.ID, resp.Question.ID)
			}
			if resp.WasPublishedRecently != tc.expectedRecent {
				t.Errorf("Expected was_published_recently %v, got %v", tc.expectedRecent, resp.WasPublishedRecently)
			}
			if len(resp.Choices) != tc.expectedCount {
				t.Errorf("Expected %d choices, got %d", tc.expectedCount, len(resp.Choices))
			}
		})
	}
}

func TestGetQuestion_Unauthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(store.New(db), cfg)
	q := testutil.CreateTestQuestion(t, db, "question", -1)
	other := testutil.CreateTestQuestion(t, db, "other", -1)

	// A key for one question does not open another
	req := testutil.MakeRequest("GET", "/admin/questions/"+q.ID, nil, map[string]string{
		auth.AdminKeyHeader: auth.GenerateAdminKey(other.ID, cfg.AdminKeySalt),
	})
	req.SetPathValue("id", q.ID)
	w := httptest.NewRecorder()

	handler.GetQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
