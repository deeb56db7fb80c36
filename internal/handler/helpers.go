package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"form-template-api/internal/middleware"
	"form-template-api/internal/response"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// pathUUID parses a UUID path parameter, writing a 400 when it is invalid
func pathUUID(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, message)
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional UUID query parameter
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// pagination reads page and limit, falling back to defaults for bad values
func pagination(c *gin.Context) (int, int) {
	page := defaultPage
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit := defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
			limit = l
		}
	}
	return page, limit
}

// currentUser returns the authenticated caller or nil when auth is disabled
func currentUser(c *gin.Context) *uuid.UUID {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil
	}
	return &id
}
