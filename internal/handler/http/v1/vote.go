package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/safezone_notifier/internal/models"
)

// @Summary Vote on a report
// @Description Upvote or downvote a report. A repeated vote by the same user replaces the previous one.
// @Tags Votes
// @Accept json
// @Param id path int true "Report ID"
// @Param vote body CastVoteRequest true "Vote"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/votes [put]
func (h *Handler) castVote(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "castVote").WithField("id", id)

	var input CastVoteRequest
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

	vote := &models.Vote{ReportID: id, UserID: input.UserID, Type: input.VoteType}
	if err := h.voteService.CastVote(c.Request.Context(), vote); err != nil {
		respondServiceError(c, log, err, "report not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Retract a vote
// @Tags Votes
// @Param id path int true "Report ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Vote not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/votes/{user_id} [delete]
func (h *Handler) retractVote(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "retractVote").WithField("id", id).WithField("user_id", userID)

	if err := h.voteService.RetractVote(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, log, err, "vote not found")
		return
	}
	c.Status(http.StatusNoContent)
}
