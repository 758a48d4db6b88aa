package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service"
)

type VoteRepository struct {
	db *pgxpool.Pool
}

func NewVoteRepository(db *pgxpool.Pool) service.VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert сохраняет голос, повторный голос того же пользователя заменяет тип
func (r *VoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (report_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (report_id, user_id) DO UPDATE SET
			vote_type = EXCLUDED.vote_type
		RETURNING created_at;
	`
	err := r.db.QueryRow(ctx, query, vote.ReportID, vote.UserID, vote.Type).Scan(&vote.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("report with id %d: %w", vote.ReportID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

// Delete удаляет голос пользователя за отчёт
func (r *VoteRepository) Delete(ctx context.Context, reportID int64, userID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM votes WHERE report_id = $1 AND user_id = $2;`, reportID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vote on report %d by %s: %w", reportID, userID, service.ErrNotFound)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
