// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/polls/auth"
	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
)

// Column limits for question_text and choice_text, in characters
const (
	MaxQuestionText = 200
	MaxChoiceText   = 200
)

type AdminHandler struct {
	store QuestionStore
	cfg   cliparse.Config
	now   func() time.Time
}

func NewAdminHandler(s QuestionStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: s, cfg: cfg, now: time.Now}
}

// CreateQuestion handles POST /admin/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	// Validate input
	text := strings.TrimSpace(req.QuestionText)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if utf8.RuneCountInString(text) > MaxQuestionText {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is too long")
		return
	}

	choices := make([]string, 0, len(req.Choices))
	for _, c := range req.Choices {
		c = strings.TrimSpace(c)
		if c == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "choices must not be empty")
			return
		}
		if utf8.RuneCountInString(c) > MaxChoiceText {
			middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is too long")
			return
		}
		choices = append(choices, c)
	}

	q := models.Question{QuestionText: text, PubDate: h.now()}
	if req.PubDate != nil {
		q.PubDate = *req.PubDate
	}

	if _, err := h.store.CreateWithChoices(r.Context(), &q, choices); err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", q.ID, "pub_date", q.PubDate, "choices", len(choices))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: q.ID,
		AdminKey:   auth.GenerateAdminKey(q.ID, h.cfg.AdminKeySalt),
	})
}

// AddChoice handles POST /admin/questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	if err := auth.ValidateRequest(r, questionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	text := strings.TrimSpace(req.ChoiceText)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required")
		return
	}
	if utf8.RuneCountInString(text) > MaxChoiceText {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is too long")
		return
	}

	// Check question exists, published or not
	if _, err := h.store.Get(r.Context(), questionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
			return
		}
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	c := models.Choice{QuestionID: questionID, ChoiceText: text}
	if err := h.store.AddChoice(r.Context(), &c); err != nil {
		slog.Error("failed to insert choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", c.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{
		ChoiceID: c.ID,
	})
}

// GetQuestion handles GET /admin/questions/{id}
// Returns the question with its choices whatever its pub_date
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	if err := auth.ValidateRequest(r, questionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	q, err := h.store.Get(r.Context(), questionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	choices, err := h.store.ListChoices(r.Context(), q.ID)
	if err != nil {
		slog.Error("failed to query choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionWithChoices{
		Question:             q,
		Choices:              choices,
		WasPublishedRecently: q.WasPublishedRecently(h.now()),
	})
}

func badBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
}
