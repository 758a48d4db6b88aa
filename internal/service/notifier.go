package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safezone_notifier/internal/geo"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/shenikar/safezone_notifier/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Geocoder переводит координаты в человекочитаемый адрес.
// Возвращает nil без ошибки, если адрес не найден.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Address, error)
}

// Notifier определяет контракт рассылки уведомлений подписчикам
type Notifier interface {
	NotifySubscribers(ctx context.Context, reportID int64) (*models.NotifyResult, error)
}

type notifier struct {
	reports       ReportRepository
	subscriptions SubscriptionRepository
	matcher       geo.Matcher
	dispatcher    webhook.WebhookPublisher
	geocoder      Geocoder
	clock         clockwork.Clock
	metrics       *observability.Metrics
	logger        *logrus.Logger
}

// NewNotifier создаёт рассыльщик. dispatcher и geocoder необязательны:
// без dispatcher каждое совпадение считается уведомлённым, без geocoder
// адрес в событии заменяется координатами.
func NewNotifier(
	reports ReportRepository,
	subscriptions SubscriptionRepository,
	matcher geo.Matcher,
	dispatcher webhook.WebhookPublisher,
	geocoder Geocoder,
	clock clockwork.Clock,
	m *observability.Metrics,
	logger *logrus.Logger,
) Notifier {
	return &notifier{
		reports:       reports,
		subscriptions: subscriptions,
		matcher:       matcher,
		dispatcher:    dispatcher,
		geocoder:      geocoder,
		clock:         clock,
		metrics:       m,
		logger:        logger,
	}
}

// NotifySubscribers отбирает подписчиков, в радиус которых попал отчёт, и уведомляет их
func (n *notifier) NotifySubscribers(ctx context.Context, reportID int64) (*models.NotifyResult, error) {
	start := n.clock.Now()
	defer func() {
		n.metrics.NotifyDuration.Observe(n.clock.Since(start).Seconds())
	}()

	log := n.logger.WithFields(logrus.Fields{
		"service":   "notifier",
		"method":    "NotifySubscribers",
		"report_id": reportID,
	})

	if reportID <= 0 {
		n.metrics.NotifyRuns.WithLabelValues("invalid").Inc()
		log.Warn("Rejected non-positive report id")
		return nil, &ValidationError{Field: "report_id", Constraint: "must be a positive integer"}
	}

	report, subscriptions, err := n.load(ctx, reportID)
	if err != nil {
		var notFound *ReportNotFoundError
		if errors.As(err, &notFound) {
			n.metrics.NotifyRuns.WithLabelValues("not_found").Inc()
			log.Warn("Report not found")
		} else {
			n.metrics.NotifyRuns.WithLabelValues("storage_error").Inc()
			log.WithError(err).Error("Failed to load report and subscriptions")
		}
		return nil, err
	}

	result := &models.NotifyResult{
		Notifications:     make([]models.NotificationIntent, 0),
		SubscriptionCount: len(subscriptions),
	}
	if len(subscriptions) == 0 {
		n.metrics.NotifyRuns.WithLabelValues("success").Inc()
		log.Info("No subscribers to notify")
		return result, nil
	}

	regions := make([]geo.Region, len(subscriptions))
	for i, sub := range subscriptions {
		regions[i] = geo.Region{
			Center:       geo.Coordinate{Lat: sub.CenterLat, Lng: sub.CenterLng},
			RadiusMeters: sub.RadiusMeters,
		}
	}
	matched := n.matcher.Match(geo.Coordinate{Lat: report.Latitude, Lng: report.Longitude}, regions)

	n.metrics.SubscriptionsEvaluated.Add(float64(len(subscriptions)))
	n.metrics.SubscriptionsMatched.Add(float64(len(matched)))

	var summary webhook.ReportSummary
	if n.dispatcher != nil && len(matched) > 0 {
		summary = n.summarize(ctx, report)
	}

	for _, idx := range matched {
		sub := subscriptions[idx]
		if n.dispatcher != nil {
			if err := n.dispatch(ctx, sub.UserID, summary); err != nil {
				n.metrics.DeliveryFailures.Inc()
				log.WithError(&DeliveryError{UserID: sub.UserID, Err: err}).Warn("Failed to dispatch notification")
				continue
			}
		}
		result.Notifications = append(result.Notifications, models.NotificationIntent{
			UserID:   sub.UserID,
			ReportID: reportID,
			Status:   models.NotificationStatusNotified,
		})
	}
	result.NotifiedCount = len(result.Notifications)

	n.metrics.NotifyRuns.WithLabelValues("success").Inc()
	log.WithFields(logrus.Fields{
		"subscriptions": len(subscriptions),
		"matched":       len(matched),
		"notified":      result.NotifiedCount,
	}).Info("Subscribers notified")
	return result, nil
}

// load читает отчёт и подписки параллельно. Ошибка отчёта важнее ошибки подписок.
func (n *notifier) load(ctx context.Context, reportID int64) (*models.Report, []*models.Subscription, error) {
	var (
		report        *models.Report
		subscriptions []*models.Subscription
		reportErr     error
		subsErr       error
		g             errgroup.Group
	)

	g.Go(func() error {
		report, reportErr = n.reports.GetByID(ctx, reportID)
		return reportErr
	})
	g.Go(func() error {
		subscriptions, subsErr = n.subscriptions.ListAll(ctx)
		return subsErr
	})
	if err := g.Wait(); err != nil {
		// Чтение, прерванное отменой запроса, сообщаем как отмену
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, &StorageError{Op: "get_report", Err: ctxErr}
		}
	}
	if reportErr != nil {
		if errors.Is(reportErr, ErrNotFound) {
			return nil, nil, &ReportNotFoundError{ReportID: reportID}
		}
		return nil, nil, &StorageError{Op: "get_report", Err: reportErr}
	}
	if report == nil {
		return nil, nil, &ReportNotFoundError{ReportID: reportID}
	}
	if subsErr != nil {
		return nil, nil, &StorageError{Op: "list_subscriptions", Err: subsErr}
	}
	return report, subscriptions, nil
}

func (n *notifier) dispatch(ctx context.Context, userID string, summary webhook.ReportSummary) error {
	event := webhook.NotificationEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Report:    summary,
		Timestamp: n.clock.Now().UTC(),
	}
	return n.dispatcher.Publish(ctx, event)
}

// summarize собирает описание отчёта для события; сбой геокодирования не фатален
func (n *notifier) summarize(ctx context.Context, report *models.Report) webhook.ReportSummary {
	summary := webhook.ReportSummary{
		ID:          report.ID,
		Category:    report.Category,
		Icon:        models.StyleFor(report.Category).Icon,
		Description: report.Description,
		Latitude:    report.Latitude,
		Longitude:   report.Longitude,
		Address:     fallbackAddress(report.Latitude, report.Longitude),
	}
	if n.geocoder == nil {
		return summary
	}

	addr, err := n.geocoder.ReverseGeocode(ctx, report.Latitude, report.Longitude)
	if err != nil {
		n.logger.WithFields(logrus.Fields{
			"service":   "notifier",
			"method":    "summarize",
			"report_id": report.ID,
		}).WithError(err).Warn("Reverse geocoding failed, using coordinates")
		return summary
	}
	if addr != nil && addr.FullAddress != "" {
		summary.Address = addr.FullAddress
	}
	return summary
}

func fallbackAddress(lat, lng float64) string {
	return fmt.Sprintf("Lokasi %.4f, %.4f", lat, lng)
}
