// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
)

var votesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polls_votes_total",
	Help: "Total number of votes recorded",
})

type PollHandler struct {
	store QuestionStore
	cfg   cliparse.Config
	now   func() time.Time
}

func NewPollHandler(s QuestionStore, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: s, cfg: cfg, now: time.Now}
}

type indexPage struct {
	models.IndexContext
	Now          time.Time
	EmptyMessage string
}

type detailPage struct {
	Question     models.Question
	Choices      []models.Choice
	ErrorMessage string
}

type resultsPage struct {
	Question   models.Question
	Choices    []models.Choice
	TotalVotes int
}

// Index handles GET /polls
// Lists every published question, most recent first
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	questions, err := h.store.ListPublished(r.Context(), now)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		h.serverError(w, r)
		return
	}

	ctx := models.IndexContext{LatestQuestionList: questions}
	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, http.StatusOK, ctx)
		return
	}

	render(w, http.StatusOK, "index.html", indexPage{
		IndexContext: ctx,
		Now:          now,
		EmptyMessage: models.MsgNoPolls,
	})
}

// Detail handles GET /polls/{id}
// Questions that are not published yet are reported as missing
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadDetail(w, r, h.now())
	if !ok {
		return
	}

	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, http.StatusOK, page.Question)
		return
	}

	render(w, http.StatusOK, "detail.html", page)
}

// Results handles GET /polls/{id}/results
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadDetail(w, r, h.now())
	if !ok {
		return
	}

	total := 0
	for _, c := range page.Choices {
		total += c.Votes
	}

	render(w, http.StatusOK, "results.html", resultsPage{
		Question:   page.Question,
		Choices:    page.Choices,
		TotalVotes: total,
	})
}

// Vote handles POST /polls/{id}/vote
// On success redirects to the results page; a missing or foreign choice
// shows the detail page again with an error message
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadDetail(w, r, h.now())
	if !ok {
		return
	}

	choiceID := r.PostFormValue("choice")
	if choiceID == "" {
		page.ErrorMessage = models.MsgNoChoice
		render(w, http.StatusOK, "detail.html", page)
		return
	}

	err := h.store.Vote(r.Context(), page.Question.ID, choiceID)
	if errors.Is(err, store.ErrNotFound) {
		page.ErrorMessage = models.MsgNoChoice
		render(w, http.StatusOK, "detail.html", page)
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "question_id", page.Question.ID)
		h.serverError(w, r)
		return
	}

	votesTotal.Inc()
	slog.Info("vote recorded", "question_id", page.Question.ID, "choice_id", choiceID)

	http.Redirect(w, r, "/polls/"+page.Question.ID+"/results", http.StatusSeeOther)
}

// loadDetail fetches the published question named in the path along with
// its choices. It writes the error response itself and reports false when
// the request is finished.
func (h *PollHandler) loadDetail(w http.ResponseWriter, r *http.Request, now time.Time) (detailPage, bool) {
	questionID := r.PathValue("id")
	if questionID == "" {
		http.NotFound(w, r)
		return detailPage{}, false
	}

	q, err := h.store.GetPublished(r.Context(), questionID, now)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return detailPage{}, false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		h.serverError(w, r)
		return detailPage{}, false
	}

	choices, err := h.store.ListChoices(r.Context(), q.ID)
	if err != nil {
		slog.Error("failed to query choices", "error", err, "question_id", q.ID)
		h.serverError(w, r)
		return detailPage{}, false
	}

	return detailPage{Question: q, Choices: choices}, true
}

func (h *PollHandler) notFound(w http.ResponseWriter, r *http.Request) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	http.NotFound(w, r)
}

func (h *PollHandler) serverError(w http.ResponseWriter, r *http.Request) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
