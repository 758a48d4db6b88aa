package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	defaultScoreLimit = 50
)

// ReportRepository определяет контракт для работы с бд отчётов
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, status string, page, pageSize int) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ListScores(ctx context.Context, limit int) ([]*models.ReportScore, error)
	GetReportFromCache(ctx context.Context, id int64) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context, id int64) error
}

// ReportEventPublisher сообщает внешним потребителям о новых отчётах
type ReportEventPublisher interface {
	PublishReportCreated(ctx context.Context, reportID int64, createdAt time.Time) error
}

// ReportService определяет контракт бизнес-логики отчётов
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id int64) (*models.Report, error)
	ListReports(ctx context.Context, status string, page, pageSize int) ([]*models.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, status string) error
	ListReportScores(ctx context.Context, limit int) ([]*models.ReportScore, error)
}

type reportService struct {
	repo      ReportRepository
	publisher ReportEventPublisher
	logger    *logrus.Logger
}

// NewReportService создаёт сервис отчётов; publisher может быть nil, если Kafka отключена
func NewReportService(repo ReportRepository, publisher ReportEventPublisher, logger *logrus.Logger) ReportService {
	return &reportService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateReport сохраняет отчёт и публикует событие о его создании
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "CreateReport",
		"user_id":  report.UserID,
		"category": report.Category,
	})
	log.Info("Attempting to create a new report")

	if err := validateReport(report); err != nil {
		log.WithError(err).Warn("Rejected invalid report")
		return err
	}

	report.Status = models.ReportStatusPendingReview
	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}
	log = log.WithField("report_id", report.ID)

	if s.publisher != nil {
		// Отчёт уже сохранён, сбой публикации не откатывает создание
		if err := s.publisher.PublishReportCreated(ctx, report.ID, report.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to publish report created event")
		}
	}

	log.Info("Report created successfully")
	return nil
}

// GetReport получает отчёт по ID, сначала из кеша
func (s *reportService) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})

	if id <= 0 {
		return nil, &ValidationError{Field: "id", Constraint: "must be a positive integer"}
	}

	cached, err := s.repo.GetReportFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read report from cache")
	}
	if cached != nil {
		log.Debug("Report served from cache")
		return cached, nil
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &ReportNotFoundError{ReportID: id}
		}
		log.WithError(err).Error("Failed to get report in repository")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}

	if err := s.repo.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}
	return report, nil
}

// ListReports возвращает страницу отчётов, новые первыми
func (s *reportService) ListReports(ctx context.Context, status string, page, pageSize int) ([]*models.Report, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "ListReports",
		"status":    status,
		"page":      page,
		"page_size": pageSize,
	})

	if status != "" && !models.IsValidReportStatus(status) {
		return nil, &ValidationError{Field: "status", Constraint: "unknown report status"}
	}

	reports, err := s.repo.List(ctx, status, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	log.WithField("count", len(reports)).Info("Reports listed successfully")
	return reports, nil
}

// UpdateReportStatus меняет статус отчёта при модерации
func (s *reportService) UpdateReportStatus(ctx context.Context, id int64, status string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "UpdateReportStatus",
		"report_id": id,
		"status":    status,
	})
	log.Info("Attempting to update report status")

	if !models.IsValidReportStatus(status) {
		return &ValidationError{Field: "status", Constraint: "unknown report status"}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to update a non-existent report")
			return &ReportNotFoundError{ReportID: id}
		}
		log.WithError(err).Error("Failed to update report status in repository")
		return fmt.Errorf("service: could not update report status: %w", err)
	}

	if err := s.repo.InvalidateReportCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	log.Info("Report status updated successfully")
	return nil
}

// ListReportScores возвращает отчёты, упорядоченные по рейтингу голосов
func (s *reportService) ListReportScores(ctx context.Context, limit int) ([]*models.ReportScore, error) {
	if limit < 1 || limit > maxPageSize {
		limit = defaultScoreLimit
	}

	scores, err := s.repo.ListScores(ctx, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "report",
			"method":  "ListReportScores",
		}).WithError(err).Error("Failed to list report scores")
		return nil, fmt.Errorf("service: could not list report scores: %w", err)
	}
	return scores, nil
}

func validateReport(report *models.Report) error {
	switch {
	case report.UserID == "":
		return &ValidationError{Field: "user_id", Constraint: "is required"}
	case report.Latitude < -90 || report.Latitude > 90:
		return &ValidationError{Field: "lat", Constraint: "must be between -90 and 90"}
	case report.Longitude < -180 || report.Longitude > 180:
		return &ValidationError{Field: "lng", Constraint: "must be between -180 and 180"}
	case !models.IsValidCategory(report.Category):
		return &ValidationError{Field: "category", Constraint: "unknown category"}
	case report.Description == "":
		return &ValidationError{Field: "description", Constraint: "is required"}
	}
	return nil
}
