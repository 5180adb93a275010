package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindhaven/mindhaven-api/internal/cache"
	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/request"
	"github.com/mindhaven/mindhaven-api/internal/services/progress"
)

// ProgressCache is the read-through cache used by the progress handler.
// Implemented by cache.SnapshotCache; separate so handlers can be tested
// against a fake.
type ProgressCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.ProgressSnapshot, error)
	Set(ctx context.Context, userID uuid.UUID, snapshot *models.ProgressSnapshot) error
}

// ProgressHandler handles progress snapshot requests
type ProgressHandler struct {
	activityRepo database.ActivityRepositoryInterface
	snapshots    ProgressCache
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(activityRepo database.ActivityRepositoryInterface, snapshots ProgressCache) *ProgressHandler {
	return &ProgressHandler{activityRepo: activityRepo, snapshots: snapshots}
}

// RegisterRoutes registers progress routes
func (h *ProgressHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/progress", h.GetProgress).Methods("GET")
}

// GetProgress returns the user's progress snapshot. The dashboard must
// always render, so any persistence failure degrades to empty stats with
// a 200 rather than an error.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()

	if h.snapshots != nil {
		snapshot, err := h.snapshots.Get(ctx, user.ID)
		if err == nil {
			respondJSON(w, http.StatusOK, snapshot)
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Progress cache read failed for user %s: %v", user.ID, err)
		}
	}

	activities, err := h.activityRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to load activities for user %s: %v", user.ID, err)
		respondJSON(w, http.StatusOK, progress.EmptyStats())
		return
	}

	snapshot := progress.ComputeStats(activities, time.Now())

	if h.snapshots != nil {
		if err := h.snapshots.Set(ctx, user.ID, &snapshot); err != nil {
			log.Printf("Progress cache write failed for user %s: %v", user.ID, err)
		}
	}

	respondJSON(w, http.StatusOK, snapshot)
}
