package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"content-rebirth/cmd/api/dto"
	"content-rebirth/cmd/api/services"
	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
)

// respondError logs err and writes the failure envelope with the status
// matching its kind.
func respondError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	_ = c.Error(err)
	config.ErrorWithFields("request failed", trace.WithFields(c.Request.Context(), config.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
		"error":  err.Error(),
	}))
	c.JSON(status, dto.Fail(err.Error()))
}

// bindJSON decodes the body into dst or answers 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// HealthDeps are the probes reported by /health.
type HealthDeps struct {
	PingDB               func(ctx context.Context) error
	AIProvider           string
	AIConfigured         bool
	MeetstreamConfigured bool
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports database reachability and which providers are configured
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /health [get]
func HealthHandler(deps HealthDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":     "ok",
			"database":   "up",
			"ai":         gin.H{"provider": deps.AIProvider, "configured": deps.AIConfigured},
			"meetstream": gin.H{"configured": deps.MeetstreamConfigured},
		}
		if deps.PingDB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := deps.PingDB(ctx); err != nil {
				body["status"] = "degraded"
				body["database"] = "down"
				body["error"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
