package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/pennywise/backend/db"
	"github.com/nemopss/pennywise/backend/events"
	"github.com/nemopss/pennywise/backend/models"
)

// CreateGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param goal body models.GoalRequest true "Goal"
// @Success 200 {object} models.GoalInDB
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /goals/ [post]
func (h *Handler) CreateGoal(c *gin.Context) {
	var req models.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindError(err))
		return
	}

	goal := models.GoalInDB{Goal: req.Goal()}
	if err := h.storage.CreateGoal(c.Request.Context(), &goal); err != nil {
		internalError(c, "create goal", err)
		return
	}

	h.publish(c, events.New(events.GoalCreated, goal))
	c.JSON(http.StatusOK, goal)
}

// GetGoals godoc
// @Summary List goals
// @Tags goals
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.GoalInDB
// @Failure 401 {object} models.ErrorResponse
// @Router /goals/ [get]
func (h *Handler) GetGoals(c *gin.Context) {
	goals, err := h.storage.GetGoals(c.Request.Context())
	if err != nil {
		internalError(c, "list goals", err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// UpdateGoal godoc
// @Summary Partially update a goal
// @Description An empty description or a zero amount keeps the stored value. Progress is replaced whenever it is sent, including 0.
// @Tags goals
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param goal body models.GoalPatch true "Fields to change"
// @Success 200 {object} models.GoalInDB
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /goals/{id} [patch]
func (h *Handler) UpdateGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch models.GoalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, bindError(err))
		return
	}

	existing, err := h.storage.GetGoal(c.Request.Context(), id)
	if err != nil {
		goalError(c, "get goal", err)
		return
	}

	updated := existing.Merge(patch)
	if err := h.storage.UpdateGoal(c.Request.Context(), &updated); err != nil {
		goalError(c, "update goal", err)
		return
	}

	h.publish(c, events.New(events.GoalUpdated, updated))
	c.JSON(http.StatusOK, updated)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /goals/{id} [delete]
func (h *Handler) DeleteGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.storage.DeleteGoal(c.Request.Context(), id); err != nil {
		goalError(c, "delete goal", err)
		return
	}

	h.publish(c, events.New(events.GoalDeleted, gin.H{"id": id}))
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Goal deleted successfully"})
}

func goalError(c *gin.Context, op string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Goal not found")
		return
	}
	internalError(c, op, err)
}
