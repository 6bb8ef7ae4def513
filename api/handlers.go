package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nemopss/pennywise/backend/auth"
	"github.com/nemopss/pennywise/backend/db"
	"github.com/nemopss/pennywise/backend/events"
	"github.com/nemopss/pennywise/backend/logger"
	"github.com/nemopss/pennywise/backend/models"
)

type Handler struct {
	storage   *db.Storage
	verifier  auth.Verifier
	hasher    auth.PasswordHasher
	publisher events.Publisher
}

func NewHandler(s *db.Storage, v auth.Verifier, hasher auth.PasswordHasher, p events.Publisher) *Handler {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &Handler{storage: s, verifier: v, hasher: hasher, publisher: p}
}

// Root godoc
// @Summary Welcome message
// @Tags meta
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Welcome to PennyWise API"})
}

func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Detail: detail})
}

// internalError logs err with the request logger and hides it from the client.
func internalError(c *gin.Context, op string, err error) {
	logger.FromContext(c.Request.Context()).Error("request failed",
		"operation", op,
		logger.FieldError, err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// publish sends e and only logs a failure; the write it reports has already
// been committed.
func (h *Handler) publish(c *gin.Context, e events.Event) {
	if err := h.publisher.Publish(c.Request.Context(), e); err != nil {
		logger.FromContext(c.Request.Context()).Warn("event publish failed",
			"event_type", e.Type,
			"event_id", e.ID,
			logger.FieldError, err)
	}
}

// bindError turns a ShouldBindJSON failure into a short client-facing detail.
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
		return fmt.Sprintf("Missing required field: %s", strings.Join(missing, ", "))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Invalid value for field: %s", typeErr.Field)
	}
	return "Invalid request body"
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
