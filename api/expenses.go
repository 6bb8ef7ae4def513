package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/pennywise/backend/events"
	"github.com/nemopss/pennywise/backend/models"
)

// CreateExpense godoc
// @Summary Add an expense
// @Tags expenses
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param expense body models.ExpenseRequest true "Expense"
// @Success 200 {object} models.ExpenseInDB
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /expenses/ [post]
func (h *Handler) CreateExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindError(err))
		return
	}
	in := req.Expense()

	// stored and returned in canonical form, so "2024-1-5" comes back as
	// "2024-01-05" and groups with other entries for that day
	date, err := models.NormalizeDate(in.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	expense := models.ExpenseInDB{Expense: in}
	expense.Date = date
	if err := h.storage.CreateExpense(c.Request.Context(), &expense); err != nil {
		internalError(c, "create expense", err)
		return
	}

	h.publish(c, events.New(events.ExpenseCreated, expense))
	c.JSON(http.StatusOK, expense)
}

// GetExpenses godoc
// @Summary List expenses, oldest first
// @Tags expenses
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.ExpenseInDB
// @Failure 401 {object} models.ErrorResponse
// @Router /expenses/ [get]
func (h *Handler) GetExpenses(c *gin.Context) {
	expenses, err := h.storage.GetExpenses(c.Request.Context())
	if err != nil {
		internalError(c, "list expenses", err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Succeeds whether or not the expense exists.
// @Tags expenses
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *Handler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.storage.DeleteExpense(c.Request.Context(), id); err != nil {
		internalError(c, "delete expense", err)
		return
	}

	h.publish(c, events.New(events.ExpenseDeleted, gin.H{"id": id}))
	c.JSON(http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Expense %d deleted successfully", id)})
}

// GetExpensesGraph godoc
// @Summary Daily expense totals
// @Tags expenses
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.DailyTotal
// @Failure 401 {object} models.ErrorResponse
// @Router /expenses/graph [get]
func (h *Handler) GetExpensesGraph(c *gin.Context) {
	expenses, err := h.storage.GetExpenses(c.Request.Context())
	if err != nil {
		internalError(c, "list expenses", err)
		return
	}
	c.JSON(http.StatusOK, models.AggregateByDate(expenses))
}
