package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/request"
)

// LoginTracking appends a login activity record the first time an
// authenticated user is seen each calendar day. Login records feed the
// streak calculation, so a day with only API traffic still counts as active.
func LoginTracking(activityRepo database.ActivityRepositoryInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := request.UserFromContext(r)
			if user != nil {
				// Runs in a background goroutine so tracking never delays
				// the request; a timeout context survives request cancellation
				go func(parentCtx context.Context, userID uuid.UUID) {
					ctx, cancel := context.WithTimeout(context.WithoutCancel(parentCtx), 10*time.Second)
					defer cancel()

					recordDailyLogin(ctx, activityRepo, userID)
				}(r.Context(), user.ID)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func recordDailyLogin(ctx context.Context, activityRepo database.ActivityRepositoryInterface, userID uuid.UUID) {
	now := time.Now()
	seen, err := activityRepo.HasActivityOnDay(ctx, userID, models.ActivityLogin, now)
	if err != nil {
		log.Printf("Failed to check login activity for user %s: %v", userID, err)
		return
	}
	if seen {
		return
	}

	activity := &models.ActivityRecord{
		UserID:    userID,
		Type:      models.ActivityLogin,
		CreatedAt: now,
	}
	if err := activityRepo.Create(ctx, activity); err != nil {
		log.Printf("Failed to record login activity for user %s: %v", userID, err)
	}
}
