package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greentech_backend/internal/logger"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CronHandler exposes the region stats recomputation to an external scheduler.
type CronHandler struct {
	*BaseHandler
	statsService services.RegionStatsService
	secret       string
}

func NewCronHandler(base *BaseHandler, statsService services.RegionStatsService, secret string) *CronHandler {
	return &CronHandler{
		BaseHandler:  base,
		statsService: statsService,
		secret:       secret,
	}
}

func (h *CronHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cron/update-region-stats", h.UpdateRegionStats)
}

// UpdateRegionStats godoc
// @Summary Recompute region statistics
// @Description Recomputes one region, or every region when region is omitted
// @Tags cron
// @Produce json
// @Param key query string true "Cron secret"
// @Param region query string false "Region slug"
// @Success 200 {object} dto.CronRefreshResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Unknown region"
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /cron/update-region-stats [get]
func (h *CronHandler) UpdateRegionStats(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.authorized(c.Query("key")) {
		logger.CtxWarn(ctx, "Rejected cron call", "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrInvalidCronKey)
		return
	}

	var (
		result *dto.RefreshResult
		err    error
	)
	if region := strings.TrimSpace(c.Query("region")); region != "" {
		result, err = h.statsService.RefreshRegion(ctx, h.GetDB(c), region)
	} else {
		result, err = h.statsService.RefreshAll(ctx, h.GetDB(c))
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CronRefreshResponse{
		Success:   result.Success,
		Message:   refreshMessage(result),
		Updated:   result.Updated,
		Failed:    result.Failed,
		Timestamp: time.Now().UTC(),
	})
}

// authorized compares the key with the configured secret. An empty secret
// rejects every call.
func (h *CronHandler) authorized(key string) bool {
	if h.secret == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.secret)) == 1
}

func refreshMessage(r *dto.RefreshResult) string {
	if len(r.Failed) == 0 {
		return fmt.Sprintf("Region stats updated for %d region(s)", r.Updated)
	}
	return fmt.Sprintf("Region stats updated for %d region(s), %d failed", r.Updated, len(r.Failed))
}
