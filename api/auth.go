package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/pennywise/backend/auth"
	"github.com/nemopss/pennywise/backend/db"
	"github.com/nemopss/pennywise/backend/events"
	"github.com/nemopss/pennywise/backend/logger"
	"github.com/nemopss/pennywise/backend/models"
)

const identityKey = "identity"

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email and password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, bindError(err))
		return
	}

	email, password := *creds.Email, *creds.Password

	hash, err := h.hasher.Hash(password)
	if err != nil {
		internalError(c, "hash password", err)
		return
	}

	if err := h.storage.CreateUser(c.Request.Context(), email, hash); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			respondError(c, http.StatusBadRequest, "Email already registered")
			return
		}
		internalError(c, "create user", err)
		return
	}

	h.publish(c, events.New(events.UserRegistered, gin.H{"email": email}))
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Check credentials
// @Description Verifies email and password. No session token is issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email and password"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, bindError(err))
		return
	}

	user, err := h.storage.GetUserByEmail(c.Request.Context(), *creds.Email)
	if err != nil {
		internalError(c, "get user", err)
		return
	}

	// unknown email and wrong password must look the same
	if user == nil || !h.hasher.Compare(user.PasswordHash, *creds.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Login successful"})
}

// AuthMiddleware rejects requests without a token the identity provider
// accepts. The token comes from "Authorization: Bearer" or, for older
// clients, the "token" query parameter.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			token = c.Query("token")
		}
		if token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		identity, err := h.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("token rejected", logger.FieldError, err)
			c.Header("WWW-Authenticate", "Bearer")
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

// Protected godoc
// @Summary Echo the verified identity
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.ProtectedResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /protected [get]
func (h *Handler) Protected(c *gin.Context) {
	resp := models.ProtectedResponse{Message: "Welcome to a protected route!"}
	if id := identityFrom(c); id != nil {
		resp.User = id.Claims
	}
	c.JSON(http.StatusOK, resp)
}
