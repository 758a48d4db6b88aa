package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/safezone_notifier/internal/service"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// corsMiddleware разрешает вызов рассылки из браузера
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", corsAllowOrigin)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Next()
	}
}

// @Summary CORS preflight for notify
// @Tags Notify
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /notify [options]
func (h *Handler) notifyPreflight(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// @Summary Notify subscribers about a report
// @Description Find every subscriber whose area contains the report location and notify them.
// @Tags Notify
// @Accept json
// @Produce json
// @Param request body NotifyRequest true "Report to broadcast"
// @Success 200 {object} NotifyResponse
// @Failure 400 {object} InvalidInputResponse "Invalid input"
// @Failure 500 {object} map[string]string "Report not found or storage error"
// @Router /notify [post]
func (h *Handler) notifySubscribers(c *gin.Context) {
	log := h.logger.WithField("method", "notifySubscribers")

	req, details := h.parseNotifyRequest(c)
	if details != nil {
		log.WithField("details", details).Warn("Invalid notify request")
		c.JSON(http.StatusBadRequest, InvalidInputResponse{Error: "Invalid input", Details: *details})
		return
	}
	log = log.WithField("report_id", req.ReportID)

	result, err := h.notifier.NotifySubscribers(c.Request.Context(), req.ReportID)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, InvalidInputResponse{
				Error:   "Invalid input",
				Details: fieldError(validationErr.Field, validationErr.Constraint),
			})
			return
		}
		log.WithError(err).Error("Failed to notify subscribers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, NotifyResultToResponse(req.ReportID, result))
}

// parseNotifyRequest разбирает тело вручную, чтобы различать отсутствующий,
// нечисловой и неположительный report_id
func (h *Handler) parseNotifyRequest(c *gin.Context) (*NotifyRequest, *FlattenedErrors) {
	var body map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil || body == nil || !errors.Is(dec.Decode(&struct{}{}), io.EOF) {
		details := FlattenedErrors{
			FormErrors:  []string{"Expected a JSON object body"},
			FieldErrors: map[string][]string{},
		}
		return nil, &details
	}

	raw, ok := body["report_id"]
	if !ok || raw == nil {
		details := fieldError("report_id", "Required")
		return nil, &details
	}
	num, ok := raw.(json.Number)
	if !ok {
		details := fieldError("report_id", "Expected number")
		return nil, &details
	}
	id, msg := integerValue(num)
	if msg != "" {
		details := fieldError("report_id", msg)
		return nil, &details
	}

	req := &NotifyRequest{ReportID: id}
	if err := h.validate.Struct(req); err != nil {
		details := fieldError("report_id", "Number must be greater than 0")
		return nil, &details
	}
	return req, nil
}

// integerValue принимает целое в любой записи JSON, включая 5.0 и 1e2
func integerValue(num json.Number) (int64, string) {
	if id, err := num.Int64(); err == nil {
		return id, ""
	}
	f, err := num.Float64()
	switch {
	case err == nil && f != math.Trunc(f):
		return 0, "Expected integer"
	case f >= math.MaxInt64:
		return 0, fmt.Sprintf("Number must be less than or equal to %d", int64(math.MaxInt64))
	case f <= 0:
		// Неположительные значения отсекает валидатор
		return 0, ""
	}
	return int64(f), ""
}

func fieldError(field, msg string) FlattenedErrors {
	return FlattenedErrors{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{field: {msg}},
	}
}
