package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/moodcanvas/internal/models"
	"github.com/sujalbistaa/moodcanvas/internal/responder"
	"github.com/sujalbistaa/moodcanvas/internal/store"
	"github.com/sujalbistaa/moodcanvas/internal/ws"
)

// --- Structs for request binding ---
// Pointer fields let "required" reject a missing key while still
// accepting an empty string.
type TextRequest struct {
	UserText *string `json:"user_text" binding:"required"`
}

type TextResponse struct {
	UserText    string `json:"user_text"`
	AIResponses string `json:"ai_responses"`
}

type DrawingRequest struct {
	DrawingData *string `json:"drawing_data" binding:"required"`
}

type SubmissionRequest struct {
	ID          *int64                `json:"id" binding:"required"`
	Type        models.SubmissionType `json:"type" binding:"required,oneof=drawing text"`
	UserContent *string               `json:"user_content" binding:"required"`
	AIResponse  *string               `json:"ai_response" binding:"required"`
	Votes       int                   `json:"votes" binding:"min=0"`
}

func (r SubmissionRequest) Submission() models.Submission {
	return models.Submission{
		ID:          *r.ID,
		Type:        r.Type,
		UserContent: *r.UserContent,
		AIResponse:  *r.AIResponse,
		Votes:       r.Votes,
	}
}

type DrawingResponse struct {
	DrawingData string `json:"drawing_data"`
	AIGuess     string `json:"ai_guess"`
}

// --- WebSocket event types ---
const (
	eventNewSubmission = "new_submission"
	eventVote          = "vote"
)

// --- Handlers ---
type Env struct {
	Store     store.Store
	Responder responder.Responder
	Hub       *ws.Hub
	Log       *zap.Logger
}

func (e *Env) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, the moodcanvas API is working!"})
}

func (e *Env) AnalyzeText(c *gin.Context) {
	var input TextRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	text := *input.UserText
	reply, err := e.Responder.AnalyzeText(c.Request.Context(), text)
	if err != nil {
		e.Log.Error("analyze text", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze text"})
		return
	}
	c.JSON(http.StatusOK, TextResponse{UserText: text, AIResponses: reply})
}

func (e *Env) AnalyzeDrawing(c *gin.Context) {
	var input DrawingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	drawing := *input.DrawingData
	guess, err := e.Responder.AnalyzeDrawing(c.Request.Context(), drawing)
	if err != nil {
		e.Log.Error("analyze drawing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze drawing"})
		return
	}
	c.JSON(http.StatusOK, DrawingResponse{DrawingData: drawing, AIGuess: guess})
}

func (e *Env) CreateSubmission(c *gin.Context) {
	var input SubmissionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	saved, err := e.Store.Append(c.Request.Context(), input.Submission())
	if err != nil {
		e.Log.Error("append submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	e.publish(eventNewSubmission, saved)
	c.JSON(http.StatusOK, saved)
}

func (e *Env) GetSubmissions(c *gin.Context) {
	subs, err := e.Store.ListAll(c.Request.Context())
	if err != nil {
		e.Log.Error("list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (e *Env) GetRankedSubmissions(c *gin.Context) {
	subs, err := e.Store.ListAll(c.Request.Context())
	if err != nil {
		e.Log.Error("list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}
	c.JSON(http.StatusOK, store.Ranked(subs))
}

func (e *Env) GetStats(c *gin.Context) {
	subs, err := e.Store.ListAll(c.Request.Context())
	if err != nil {
		e.Log.Error("list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, store.Summarize(subs))
}

func (e *Env) VoteOnSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	updated, err := e.Store.Vote(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		e.Log.Error("vote on submission", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process vote"})
		return
	}

	e.publish(eventVote, gin.H{"id": updated.ID, "votes": updated.Votes})
	c.JSON(http.StatusOK, updated)
}

func (e *Env) publish(eventType string, data interface{}) {
	if e.Hub == nil {
		return
	}
	e.Hub.Publish(eventType, data)
}
