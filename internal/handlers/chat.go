package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/request"
	"github.com/mindhaven/mindhaven-api/internal/services/therapy"
	"github.com/mindhaven/mindhaven-api/internal/validation"
)

const (
	// historyMessageCount is how many prior turns are handed to the responder
	historyMessageCount = 6

	// summaryTriggerCount is the number of existing messages after which a
	// session summary job is enqueued. Two means the first full exchange is
	// complete, so there is enough conversation to title the session.
	summaryTriggerCount = 2
)

// ChatHandler handles chat session and message requests
type ChatHandler struct {
	sessionRepo  database.ChatSessionRepositoryInterface
	messageRepo  database.ChatMessageRepositoryInterface
	activityRepo database.ActivityRepositoryInterface
	responder    *therapy.Responder
	jobQueue     queue.JobQueue
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	sessionRepo database.ChatSessionRepositoryInterface,
	messageRepo database.ChatMessageRepositoryInterface,
	activityRepo database.ActivityRepositoryInterface,
	responder *therapy.Responder,
	jobQueue queue.JobQueue,
) *ChatHandler {
	return &ChatHandler{
		sessionRepo:  sessionRepo,
		messageRepo:  messageRepo,
		activityRepo: activityRepo,
		responder:    responder,
		jobQueue:     jobQueue,
	}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	r.HandleFunc("/sessions", h.ListSessions).Methods("GET")
	r.HandleFunc("/sessions/{id}/messages", h.ListMessages).Methods("GET")
	r.HandleFunc("/sessions/{id}/messages", h.SendMessage).Methods("POST")
}

// CreateSessionRequest represents a session creation request
type CreateSessionRequest struct {
	Title       string `json:"title"`
	TherapyType string `json:"therapy_type" validate:"required,therapy_type"`
}

// SendMessageRequest represents a chat message request
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// SendMessageResponse pairs the stored user message with the AI reply
type SendMessageResponse struct {
	UserMessage *models.ChatMessage `json:"user_message"`
	AIMessage   *models.ChatMessage `json:"ai_message"`
}

// CreateSession creates a new chat session
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.TherapyType == "" {
		req.TherapyType = string(models.TherapyGeneral)
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	therapyType := models.TherapyType(req.TherapyType)
	title := validation.SanitizeText(req.Title)
	if title == "" {
		title = defaultSessionTitle(therapyType, time.Now())
	}

	session := &models.ChatSession{
		UserID:      user.ID,
		Title:       title,
		TherapyType: therapyType,
	}
	if err := h.sessionRepo.Create(r.Context(), session); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// ListSessions lists the user's chat sessions, most recently active first
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	sessions, err := h.sessionRepo.ListByUserID(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to list sessions", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// ListMessages returns the full message history of a session in append order
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	session, ok := h.ownedSession(w, r, user.ID)
	if !ok {
		return
	}

	messages, err := h.messageRepo.ListBySessionID(r.Context(), session.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to list messages", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// SendMessage records a user message, produces the AI reply, and records it.
// The user message row is committed before generation starts so the turn is
// never lost, even if the reply falls back to a deterministic response.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	session, ok := h.ownedSession(w, r, user.ID)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req.Content = validation.SanitizeText(req.Content)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	ctx := r.Context()

	recent, err := h.messageRepo.ListRecentBySessionID(ctx, session.ID, historyMessageCount)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to load conversation history", err.Error())
		return
	}

	userMessage := &models.ChatMessage{
		SessionID: session.ID,
		UserID:    user.ID,
		Type:      models.MessageUser,
		Content:   req.Content,
	}
	if err := h.messageRepo.Create(ctx, userMessage); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to save message", err.Error())
		return
	}

	history := make([]string, 0, len(recent))
	for _, m := range recent {
		history = append(history, m.Content)
	}

	reply := h.responder.Respond(ctx, req.Content, session.TherapyType, history)

	aiMessage := &models.ChatMessage{
		SessionID: session.ID,
		UserID:    user.ID,
		Type:      models.MessageAI,
		Content:   reply,
	}
	if err := h.messageRepo.Create(ctx, aiMessage); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to save response", err.Error())
		return
	}

	if err := h.sessionRepo.Touch(ctx, session.ID); err != nil {
		log.Printf("Failed to bump session %s: %v", session.ID, err)
	}

	activity := &models.ActivityRecord{
		UserID: user.ID,
		Type:   models.ActivityTherapySession,
	}
	if err := h.activityRepo.Create(ctx, activity); err != nil {
		log.Printf("Failed to record therapy session activity for user %s: %v", user.ID, err)
	}

	h.enqueueFollowups(r, user.ID, session.ID, len(recent))

	respondJSON(w, http.StatusOK, SendMessageResponse{
		UserMessage: userMessage,
		AIMessage:   aiMessage,
	})
}

// enqueueFollowups schedules the async work that trails a chat exchange.
// Queue failures are logged, never surfaced: the reply already succeeded.
func (h *ChatHandler) enqueueFollowups(r *http.Request, userID, sessionID uuid.UUID, priorCount int) {
	if h.jobQueue == nil {
		return
	}
	ctx := r.Context()

	if err := h.jobQueue.Enqueue(ctx, queue.NewJob(queue.JobTypeSnapshotRefresh, userID, nil)); err != nil {
		log.Printf("Failed to enqueue snapshot refresh for user %s: %v", userID, err)
	}

	if priorCount == summaryTriggerCount {
		sid := sessionID
		if err := h.jobQueue.Enqueue(ctx, queue.NewJob(queue.JobTypeSessionSummary, userID, &sid)); err != nil {
			log.Printf("Failed to enqueue session summary for session %s: %v", sessionID, err)
		}
	}
}

// ownedSession parses the {id} route variable, loads the session, and checks
// ownership. Sessions belonging to other users read as not found.
func (h *ChatHandler) ownedSession(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.ChatSession, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid session ID", err.Error())
		return nil, false
	}

	session, err := h.sessionRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Session not found", "chat session not found")
		return nil, false
	}
	if session.UserID != userID {
		respondJSONError(w, http.StatusNotFound, "Session not found", "chat session not found")
		return nil, false
	}
	return session, true
}

// defaultSessionTitle builds the title used when the client does not name
// the session, e.g. "CBT Session - Jun 15, 2025".
func defaultSessionTitle(therapyType models.TherapyType, now time.Time) string {
	labels := map[models.TherapyType]string{
		models.TherapyCBT:             "CBT",
		models.TherapyDBT:             "DBT",
		models.TherapyMindfulness:     "Mindfulness",
		models.TherapySolutionFocused: "Solution-Focused",
		models.TherapyGeneral:         "General",
	}
	label, ok := labels[therapyType]
	if !ok {
		label = "General"
	}
	return label + " Session - " + now.Format("Jan 2, 2006")
}
