package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
)

func activityRouter(h *ActivityHandler) *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCreateActivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		validate   func(*testing.T, *fakeActivityRepo, *fakeJobQueue)
	}{
		{
			name:       "meditation with duration and mood",
			body:       `{"activity_type":"meditation","duration_minutes":15,"mood_rating":7}`,
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, repo *fakeActivityRepo, jobQueue *fakeJobQueue) {
				if len(repo.activities) != 1 {
					t.Fatalf("Expected 1 activity, got %d", len(repo.activities))
				}
				a := repo.activities[0]
				if a.Type != models.ActivityMeditation {
					t.Errorf("Expected meditation, got %s", a.Type)
				}
				if a.DurationMinutes == nil || *a.DurationMinutes != 15 {
					t.Error("Expected duration 15")
				}
				if got := jobQueue.jobsOfType(queue.JobTypeSnapshotRefresh); len(got) != 1 {
					t.Errorf("Expected one snapshot refresh job, got %d", len(got))
				}
			},
		},
		{
			name:       "wellness without extras",
			body:       `{"activity_type":"wellness_activity"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown type",
			body:       `{"activity_type":"juggling"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative duration",
			body:       `{"activity_type":"meditation","duration_minutes":-5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "mood rating out of range",
			body:       `{"activity_type":"meditation","mood_rating":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing type",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeActivityRepo{}
			jobQueue := &fakeJobQueue{}
			h := NewActivityHandler(repo, jobQueue, newFakeProgressCache())
			req := httptest.NewRequest("POST", "/activities", bytes.NewBufferString(tt.body))
			req = authedRequest(req, testUser())
			rec := httptest.NewRecorder()

			activityRouter(h).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (body %s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.validate != nil {
				tt.validate(t, repo, jobQueue)
			}
		})
	}
}

func TestCreateActivityInvalidatesCachedSnapshot(t *testing.T) {
	t.Parallel()

	user := testUser()
	snapshots := newFakeProgressCache()
	snapshots.snapshots[user.ID] = &models.ProgressSnapshot{StreakDays: 3}

	h := NewActivityHandler(&fakeActivityRepo{}, &fakeJobQueue{}, snapshots)
	req := httptest.NewRequest("POST", "/activities", bytes.NewBufferString(`{"activity_type":"meditation","duration_minutes":10}`))
	req = authedRequest(req, user)
	rec := httptest.NewRecorder()

	activityRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}
	if len(snapshots.invalidated) != 1 || snapshots.invalidated[0] != user.ID {
		t.Errorf("Expected one invalidation for user %s, got %v", user.ID, snapshots.invalidated)
	}
	if _, ok := snapshots.snapshots[user.ID]; ok {
		t.Error("Cached snapshot should be gone after a new activity")
	}
}

func TestListActivities(t *testing.T) {
	t.Parallel()

	user := testUser()
	repo := &fakeActivityRepo{
		activities: []models.ActivityRecord{
			{UserID: user.ID, Type: models.ActivityMeditation},
			{UserID: user.ID, Type: models.ActivityTherapySession},
		},
	}

	h := NewActivityHandler(repo, &fakeJobQueue{}, nil)
	req := httptest.NewRequest("GET", "/activities", nil)
	req = authedRequest(req, user)
	rec := httptest.NewRecorder()

	activityRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var activities []models.ActivityRecord
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &activities); err != nil {
		t.Fatalf("Failed to decode activities: %v", err)
	}
	if len(activities) != 2 {
		t.Errorf("Expected 2 activities, got %d", len(activities))
	}
}
