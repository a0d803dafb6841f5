package handlers

import (
	"net/http"

	"github.com/alumnihub/alumnihub-api/internal/middleware"
	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MentorshipHandler handles the mentorship lifecycle endpoints
type MentorshipHandler struct {
	service services.MentorshipServiceInterface
}

// NewMentorshipHandler creates a new MentorshipHandler
func NewMentorshipHandler(service services.MentorshipServiceInterface) *MentorshipHandler {
	return &MentorshipHandler{
		service: service,
	}
}

// RegisterRoutes mounts the mentorship routes on an authenticated group
func (h *MentorshipHandler) RegisterRoutes(group *gin.RouterGroup) {
	m := group.Group("/mentorships")

	m.POST("/request", h.RequestMentorship)
	m.GET("/as-mentor", h.ListAsMentor)
	m.GET("/as-mentee", h.ListAsMentee)

	m.POST("/sessions/:sessionId/complete", h.CompleteSession)
	m.DELETE("/sessions/:sessionId", h.DeleteSession)
	m.PUT("/goals/:goalId/progress", h.UpdateGoalProgress)
	m.DELETE("/goals/:goalId", h.DeleteGoal)

	m.GET("/:id", h.GetMentorship)
	m.PUT("/:id/accept", h.AcceptMentorship)
	m.PUT("/:id/reject", h.RejectMentorship)
	m.PUT("/:id/complete", h.CompleteMentorship)
	m.GET("/:id/sessions", h.ListSessions)
	m.POST("/:id/sessions", h.ScheduleSession)
	m.GET("/:id/goals", h.ListGoals)
	m.POST("/:id/goals", h.CreateGoal)
}

// actor resolves the caller or writes a 401
func actor(c *gin.Context) (models.Actor, bool) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return models.Actor{}, false
	}
	return session.Actor(), true
}

// bindJSON binds and validates the body, writing a 400 with field details on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseValidationErrors(err), err)
		return false
	}
	return true
}

// RequestMentorship handles POST /api/v1/mentorships/request
func (h *MentorshipHandler) RequestMentorship(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req models.RequestMentorshipRequest
	if !bindJSON(c, &req) {
		return
	}

	mentorship, err := h.service.RequestMentorship(c.Request.Context(), a, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to request mentorship")
		return
	}

	c.JSON(http.StatusCreated, mentorship)
}

// ListAsMentor handles GET /api/v1/mentorships/as-mentor
func (h *MentorshipHandler) ListAsMentor(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	response, err := h.service.ListAsMentor(c.Request.Context(), a)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentorships")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListAsMentee handles GET /api/v1/mentorships/as-mentee
func (h *MentorshipHandler) ListAsMentee(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	response, err := h.service.ListAsMentee(c.Request.Context(), a)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentorships")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMentorship handles GET /api/v1/mentorships/:id
func (h *MentorshipHandler) GetMentorship(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	view, err := h.service.GetMentorship(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentorship")
		return
	}

	c.JSON(http.StatusOK, view)
}

// AcceptMentorship handles PUT /api/v1/mentorships/:id/accept
func (h *MentorshipHandler) AcceptMentorship(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	mentorship, err := h.service.AcceptMentorship(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to accept mentorship")
		return
	}

	c.JSON(http.StatusOK, mentorship)
}

// RejectMentorship handles PUT /api/v1/mentorships/:id/reject
func (h *MentorshipHandler) RejectMentorship(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	mentorship, err := h.service.RejectMentorship(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to reject mentorship")
		return
	}

	c.JSON(http.StatusOK, mentorship)
}

// CompleteMentorship handles PUT /api/v1/mentorships/:id/complete
func (h *MentorshipHandler) CompleteMentorship(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	mentorship, err := h.service.CompleteMentorship(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to complete mentorship")
		return
	}

	c.JSON(http.StatusOK, mentorship)
}

// ListSessions handles GET /api/v1/mentorships/:id/sessions
func (h *MentorshipHandler) ListSessions(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	response, err := h.service.ListSessions(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ScheduleSession handles POST /api/v1/mentorships/:id/sessions
func (h *MentorshipHandler) ScheduleSession(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req models.ScheduleSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.service.ScheduleSession(c.Request.Context(), a, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to schedule session")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CompleteSession handles POST /api/v1/mentorships/sessions/:sessionId/complete
func (h *MentorshipHandler) CompleteSession(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	session, err := h.service.CompleteSession(c.Request.Context(), a, c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err, "Failed to complete session")
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession handles DELETE /api/v1/mentorships/sessions/:sessionId
func (h *MentorshipHandler) DeleteSession(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), a, c.Param("sessionId")); err != nil {
		respondServiceError(c, err, "Failed to delete session")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListGoals handles GET /api/v1/mentorships/:id/goals
func (h *MentorshipHandler) ListGoals(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	response, err := h.service.ListGoals(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch goals")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateGoal handles POST /api/v1/mentorships/:id/goals
func (h *MentorshipHandler) CreateGoal(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req models.CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.service.CreateGoal(c.Request.Context(), a, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// UpdateGoalProgress handles PUT /api/v1/mentorships/goals/:goalId/progress
func (h *MentorshipHandler) UpdateGoalProgress(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req models.UpdateGoalProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.service.UpdateGoalProgress(c.Request.Context(), a, c.Param("goalId"), *req.ProgressPercentage)
	if err != nil {
		respondServiceError(c, err, "Failed to update goal progress")
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/v1/mentorships/goals/:goalId
func (h *MentorshipHandler) DeleteGoal(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), a, c.Param("goalId")); err != nil {
		respondServiceError(c, err, "Failed to delete goal")
		return
	}

	c.Status(http.StatusNoContent)
}
