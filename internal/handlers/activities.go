package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/request"
	"github.com/mindhaven/mindhaven-api/internal/validation"
)

// SnapshotInvalidator drops a user's cached progress snapshot so the next
// dashboard read recomputes from the activity log.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// ActivityHandler handles activity tracking requests
type ActivityHandler struct {
	activityRepo database.ActivityRepositoryInterface
	jobQueue     queue.JobQueue
	snapshots    SnapshotInvalidator
}

// NewActivityHandler creates a new activity handler. snapshots may be nil.
func NewActivityHandler(activityRepo database.ActivityRepositoryInterface, jobQueue queue.JobQueue, snapshots SnapshotInvalidator) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo, jobQueue: jobQueue, snapshots: snapshots}
}

// RegisterRoutes registers activity routes
func (h *ActivityHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/activities", h.CreateActivity).Methods("POST")
	r.HandleFunc("/activities", h.ListActivities).Methods("GET")
}

// CreateActivityRequest represents an activity tracking request
type CreateActivityRequest struct {
	ActivityType    string  `json:"activity_type" validate:"required,activity_type"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	MoodRating      *int    `json:"mood_rating,omitempty" validate:"omitempty,min=1,max=10"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateActivity appends an activity record to the user's log
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if req.Notes != nil {
		sanitized := validation.SanitizeText(*req.Notes)
		req.Notes = &sanitized
	}

	activity := &models.ActivityRecord{
		UserID:          user.ID,
		Type:            models.ActivityType(req.ActivityType),
		DurationMinutes: req.DurationMinutes,
		MoodRating:      req.MoodRating,
		Notes:           req.Notes,
	}
	if err := h.activityRepo.Create(r.Context(), activity); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to record activity", err.Error())
		return
	}

	if h.snapshots != nil {
		if err := h.snapshots.Invalidate(r.Context(), user.ID); err != nil {
			log.Printf("Failed to invalidate progress snapshot for user %s: %v", user.ID, err)
		}
	}
	if h.jobQueue != nil {
		if err := h.jobQueue.Enqueue(r.Context(), queue.NewJob(queue.JobTypeSnapshotRefresh, user.ID, nil)); err != nil {
			log.Printf("Failed to enqueue snapshot refresh for user %s: %v", user.ID, err)
		}
	}

	respondJSON(w, http.StatusCreated, activity)
}

// ListActivities returns the user's activity log, newest first
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	activities, err := h.activityRepo.ListByUserID(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to list activities", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, activities)
}
