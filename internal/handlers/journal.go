package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/request"
	"github.com/mindhaven/mindhaven-api/internal/validation"
)

// JournalHandler handles journal entry requests
type JournalHandler struct {
	journalRepo  database.JournalRepositoryInterface
	activityRepo database.ActivityRepositoryInterface
	jobQueue     queue.JobQueue
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(
	journalRepo database.JournalRepositoryInterface,
	activityRepo database.ActivityRepositoryInterface,
	jobQueue queue.JobQueue,
) *JournalHandler {
	return &JournalHandler{
		journalRepo:  journalRepo,
		activityRepo: activityRepo,
		jobQueue:     jobQueue,
	}
}

// RegisterRoutes registers journal routes
func (h *JournalHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/journal", h.CreateEntry).Methods("POST")
	r.HandleFunc("/journal", h.ListEntries).Methods("GET")
}

// CreateJournalEntryRequest represents a journal entry creation request
type CreateJournalEntryRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required,max=20000"`
	MoodRating *int   `json:"mood_rating,omitempty" validate:"omitempty,min=1,max=10"`
}

// CreateEntry saves a journal entry and appends a journal_entry activity
// record so the entry counts toward progress stats
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req.Title = validation.SanitizeText(req.Title)
	req.Content = validation.SanitizeText(req.Content)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	entry := &models.JournalEntry{
		UserID:     user.ID,
		Title:      req.Title,
		Content:    req.Content,
		MoodRating: req.MoodRating,
	}
	if err := h.journalRepo.Create(r.Context(), entry); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to save journal entry", err.Error())
		return
	}

	activity := &models.ActivityRecord{
		UserID:     user.ID,
		Type:       models.ActivityJournalEntry,
		MoodRating: req.MoodRating,
	}
	if err := h.activityRepo.Create(r.Context(), activity); err != nil {
		log.Printf("Failed to record journal activity for user %s: %v", user.ID, err)
	}

	if h.jobQueue != nil {
		if err := h.jobQueue.Enqueue(r.Context(), queue.NewJob(queue.JobTypeSnapshotRefresh, user.ID, nil)); err != nil {
			log.Printf("Failed to enqueue snapshot refresh for user %s: %v", user.ID, err)
		}
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListEntries returns the user's journal entries, newest first
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	entries, err := h.journalRepo.ListByUserID(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to list journal entries", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
