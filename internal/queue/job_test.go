package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	job := NewJob(JobTypeSessionSummary, userID, &sessionID)
	if job.ID == uuid.Nil {
		t.Error("job ID not assigned")
	}
	if job.Type != JobTypeSessionSummary {
		t.Errorf("Type = %v, want %v", job.Type, JobTypeSessionSummary)
	}
	if job.UserID != userID {
		t.Errorf("UserID = %v, want %v", job.UserID, userID)
	}
	if job.SessionID == nil || *job.SessionID != sessionID {
		t.Errorf("SessionID = %v, want %v", job.SessionID, sessionID)
	}
	if job.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", job.MaxRetries)
	}
}

func TestJob_ShouldProcess(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		notBefore *time.Time
		notAfter  *time.Time
		want      bool
	}{
		{name: "no bounds", want: true},
		{name: "not before future", notBefore: &future, want: false},
		{name: "not before past", notBefore: &past, want: true},
		{name: "expired", notAfter: &past, want: false},
		{name: "not yet expired", notAfter: &future, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := NewJob(JobTypeSnapshotRefresh, uuid.New(), nil)
			job.NotBefore = tt.notBefore
			job.NotAfter = tt.notAfter
			if got := job.ShouldProcess(); got != tt.want {
				t.Errorf("ShouldProcess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_Retry(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeSnapshotRefresh, uuid.New(), nil)
	for i := 0; i < job.MaxRetries; i++ {
		if !job.CanRetry() {
			t.Fatalf("CanRetry() = false at retry %d, want true", i)
		}
		job.IncrementRetry()
	}
	if job.CanRetry() {
		t.Error("CanRetry() = true after exhausting retries, want false")
	}
}
