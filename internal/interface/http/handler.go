package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
	apperrors "github.com/alkias2/SolunarBase/pkg/errors"
)

// Handler wires the HTTP transport to the forecast domain service.
type Handler struct {
	forecastSvc solunar.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(forecastSvc solunar.Service, logger *slog.Logger) *Handler {
	return &Handler{
		forecastSvc: forecastSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Forecast computes a solunar activity forecast for one day and location.
func (h *Handler) Forecast(c *gin.Context) {
	var req solunar.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.forecastSvc.Forecast(c.Request.Context(), req)
	if err != nil {
		if apperrors.IsCode(err, "invalid_input") {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "forecast_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recent lists the newest forecast history records.
func (h *Handler) Recent(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a positive integer up to 500", err))
			return
		}
		limit = parsed
	}

	records, err := h.forecastSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", errMessage(err), err))
		return
	}
	if records == nil {
		records = []solunar.Record{}
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": records})
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
