package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/termspage/termspage/internal/terms/service"
	"github.com/termspage/termspage/pkg/logger"
	"github.com/termspage/termspage/pkg/metrics"
)

// RegisterRoutes mounts GET /api/terms and GET /api/health. The contract is
// the same for the long-running server and the one-shot function.
func RegisterRoutes(r gin.IRouter, reader service.Reader) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/api/terms", func(c *gin.Context) {
		raw := c.Query("lang")
		resp, err := reader.Get(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				respond(c, http.StatusNotFound, gin.H{"error": "Terms not found for language: " + reader.Lang(raw)})
				return
			}
			logger.Errorf("terms lookup failed: %v", err)
			respond(c, http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		respond(c, http.StatusOK, resp)
	})
}

// RejectOtherMethods answers 405 for writes to /api/terms. Only the one-shot
// function does this; OPTIONS is left to the CORS middleware.
func RejectOtherMethods(r gin.IRouter) {
	notAllowed := func(c *gin.Context) {
		respond(c, http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead} {
		r.Handle(m, "/api/terms", notAllowed)
	}
}

func respond(c *gin.Context, status int, body any) {
	metrics.TermsRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}
