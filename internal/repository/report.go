package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service"
)

const reportColumns = `
	id,
	user_id,
	lat,
	lng,
	category,
	description,
	COALESCE(photo_url, ''),
	status,
	created_at,
	updated_at`

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об отчёте в бд
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (user_id, lat, lng, category, description, photo_url, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.UserID,
		report.Latitude,
		report.Longitude,
		report.Category,
		report.Description,
		report.PhotoURL,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID возвращает отчёт по его идентификатору
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// List возвращает список отчётов с пагинацией, пустой status означает все статусы
func (r *ReportRepository) List(ctx context.Context, status string, page, pageSize int) ([]*models.Report, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return reports, nil
}

// UpdateStatus меняет статус отчёта
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE reports SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	// RowsAffected() == 0 значит отчёта с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %d: %w", id, service.ErrNotFound)
	}
	return nil
}

// ListScores считает голоса по всем отчётам одним агрегирующим запросом
func (r *ReportRepository) ListScores(ctx context.Context, limit int) ([]*models.ReportScore, error) {
	query := `
		SELECT
			r.id,
			r.category,
			r.description,
			r.status,
			r.created_at,
			COUNT(v.user_id) FILTER (WHERE v.vote_type = 'upvote')   AS upvotes,
			COUNT(v.user_id) FILTER (WHERE v.vote_type = 'downvote') AS downvotes
		FROM reports r
		LEFT JOIN votes v ON v.report_id = r.id
		GROUP BY r.id
		ORDER BY
			COUNT(v.user_id) FILTER (WHERE v.vote_type = 'upvote')
			- COUNT(v.user_id) FILTER (WHERE v.vote_type = 'downvote') DESC,
			r.created_at DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report scores: %w", err)
	}
	defer rows.Close()

	scores := make([]*models.ReportScore, 0)
	for rows.Next() {
		score := &models.ReportScore{}
		err := rows.Scan(
			&score.ReportID,
			&score.Category,
			&score.Description,
			&score.Status,
			&score.CreatedAt,
			&score.Upvotes,
			&score.Downvotes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report score row: %w", err)
		}
		score.Score = score.Upvotes - score.Downvotes
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListScores: %w", err)
	}
	return scores, nil
}

// GetReportFromCache пытается получить отчёт из Redis, промах возвращает nil без ошибки
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id int64) (*models.Report, error) {
	val, err := r.redisClient.Get(ctx, reportCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache сохраняет отчёт в Redis
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, reportCacheKey(report.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache удаляет отчёт из Redis кэша
func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id int64) error {
	if err := r.redisClient.Del(ctx, reportCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

func reportCacheKey(id int64) string {
	return fmt.Sprintf("report:%d", id)
}

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.UserID,
		&report.Latitude,
		&report.Longitude,
		&report.Category,
		&report.Description,
		&report.PhotoURL,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}
