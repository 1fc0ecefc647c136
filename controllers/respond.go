package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors stay opaque; detail lives in the audit log only.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body := gin.H{"error": verr.Message}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	var cerr *services.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Message})
		return
	}

	var nferr *services.NotFoundError
	if errors.As(err, &nferr) {
		c.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
		return
	}

	var autherr *services.AuthenticationError
	if errors.As(err, &autherr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": autherr.Message})
		return
	}

	var authzerr *services.AuthorizationError
	if errors.As(err, &authzerr) {
		c.JSON(http.StatusForbidden, gin.H{"error": authzerr.Message})
		return
	}

	var terr *services.TransientStoreError
	if errors.As(err, &terr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database temporarily unavailable"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
