package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/mindhaven-api/internal/cache"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/request"
)

// authedRequest attaches a user to the request context the way the auth
// middleware does in production
func authedRequest(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(request.WithUser(r.Context(), user))
}

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}
}

// envelope mirrors the respondJSON wire format for assertions
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	return env
}

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]*models.ChatSession
	createErr error
	touched   []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*models.ChatSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.ChatSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("chat session not found")
	}
	return s, nil
}

func (f *fakeSessionRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateTitle(_ context.Context, id uuid.UUID, title string) error {
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("chat session not found")
	}
	s.Title = title
	return nil
}

func (f *fakeSessionRepo) Touch(_ context.Context, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeMessageRepo struct {
	messages  []models.ChatMessage
	createErr error
}

func (f *fakeMessageRepo) Create(_ context.Context, message *models.ChatMessage) error {
	if f.createErr != nil {
		return f.createErr
	}
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) ListBySessionID(_ context.Context, sessionID uuid.UUID) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListRecentBySessionID(ctx context.Context, sessionID uuid.UUID, n int) ([]models.ChatMessage, error) {
	all, err := f.ListBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

type fakeActivityRepo struct {
	activities []models.ActivityRecord
	createErr  error
	listErr    error
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *models.ActivityRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.ActivityRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.ActivityRecord
	for _, a := range f.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) HasActivityOnDay(_ context.Context, userID uuid.UUID, activityType models.ActivityType, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	for _, a := range f.activities {
		if a.UserID == userID && a.Type == activityType && !a.CreatedAt.Before(start) && a.CreatedAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

type fakeJournalRepo struct {
	entries   []models.JournalEntry
	createErr error
}

func (f *fakeJournalRepo) Create(_ context.Context, entry *models.JournalEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeJournalRepo) GetByID(_ context.Context, id uuid.UUID) (*models.JournalEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("journal entry not found")
}

func (f *fakeJournalRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeJobQueue struct {
	jobs       []*queue.Job
	enqueueErr error
}

func (f *fakeJobQueue) Enqueue(_ context.Context, job *queue.Job) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobQueue) Dequeue(_ context.Context) (*queue.Message, error) {
	return nil, nil
}

func (f *fakeJobQueue) Consume(_ context.Context, _ int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, fmt.Errorf("not supported")
}

func (f *fakeJobQueue) Close() error { return nil }

func (f *fakeJobQueue) HealthCheck(_ context.Context) error { return nil }

func (f *fakeJobQueue) jobsOfType(jobType queue.JobType) []*queue.Job {
	var out []*queue.Job
	for _, j := range f.jobs {
		if j.Type == jobType {
			out = append(out, j)
		}
	}
	return out
}

type fakeProgressCache struct {
	snapshots   map[uuid.UUID]*models.ProgressSnapshot
	invalidated []uuid.UUID
	getErr      error
	setErr      error
}

func newFakeProgressCache() *fakeProgressCache {
	return &fakeProgressCache{snapshots: make(map[uuid.UUID]*models.ProgressSnapshot)}
}

func (f *fakeProgressCache) Get(_ context.Context, userID uuid.UUID) (*models.ProgressSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.snapshots[userID]
	if !ok {
		return nil, cache.ErrMiss
	}
	return s, nil
}

func (f *fakeProgressCache) Set(_ context.Context, userID uuid.UUID, snapshot *models.ProgressSnapshot) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.snapshots[userID] = snapshot
	return nil
}

func (f *fakeProgressCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	f.invalidated = append(f.invalidated, userID)
	delete(f.snapshots, userID)
	return nil
}
