package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	notifier            service.Notifier
	reportService       service.ReportService
	subscriptionService service.SubscriptionService
	voteService         service.VoteService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(
	notifier service.Notifier,
	reportService service.ReportService,
	subscriptionService service.SubscriptionService,
	voteService service.VoteService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		notifier:            notifier,
		reportService:       reportService,
		subscriptionService: subscriptionService,
		voteService:         voteService,
		logger:              logger,
		validate:            newValidator(),
		cfg:                 cfg,
	}
}

// newValidator регистрирует правило report_category для DTO отчётов
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("report_category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// respondServiceError переводит ошибку сервиса в HTTP-ответ
func respondServiceError(c *gin.Context, log *logrus.Entry, err error, notFoundMsg string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.WithError(err).Warn("Validation failed in service")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseReportID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return 0, false
	}
	return id, true
}

// @Summary List report categories
// @Description Get the icon and color of every report category
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string]models.CategoryStyle
// @Router /categories [get]
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoryStyles())
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
