package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new report
// @Description Create a new incident report. The report starts in pending_review and a report.created event is published.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report creation request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToReportModel(input)
	if err := h.reportService.CreateReport(c.Request.Context(), model); err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(model))
}

// @Summary Get a list of reports
// @Description Get a paginated list of reports, newest first
// @Tags Reports
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} ReportResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	reports, err := h.reportService.ListReports(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}

	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Get report by ID
// @Description Get a single report by its ID
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Get report scores
// @Description Get reports ordered by vote score (upvotes minus downvotes)
// @Tags Reports
// @Produce json
// @Param limit query int false "Maximum number of reports" default(50)
// @Success 200 {array} ReportScoreResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/scores [get]
func (h *Handler) listReportScores(c *gin.Context) {
	log := h.logger.WithField("method", "listReportScores")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	scores, err := h.reportService.ListReportScores(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToReportScoreResponses(scores))
}

// @Summary Update report status
// @Description Moderate a report by changing its status. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Report ID"
// @Param status body UpdateReportStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/reports/{id}/status [patch]
func (h *Handler) updateReportStatus(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateReportStatus").WithField("id", id)

	var input UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reportService.UpdateReportStatus(c.Request.Context(), id, input.Status); err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}
	c.Status(http.StatusNoContent)
}
