package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/sirupsen/logrus"
)

// VoteRepository определяет контракт для работы с бд голосов.
// Upsert возвращает ErrNotFound, если отчёта не существует.
type VoteRepository interface {
	Upsert(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, reportID int64, userID string) error
}

// VoteService определяет контракт голосования за отчёты
type VoteService interface {
	CastVote(ctx context.Context, vote *models.Vote) error
	RetractVote(ctx context.Context, reportID int64, userID string) error
}

type voteService struct {
	repo   VoteRepository
	logger *logrus.Logger
}

func NewVoteService(repo VoteRepository, logger *logrus.Logger) VoteService {
	return &voteService{
		repo:   repo,
		logger: logger,
	}
}

// CastVote сохраняет голос пользователя, повторный голос заменяет прежний
func (s *voteService) CastVote(ctx context.Context, vote *models.Vote) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "vote",
		"method":    "CastVote",
		"report_id": vote.ReportID,
		"user_id":   vote.UserID,
	})

	if !models.IsValidVoteType(vote.Type) {
		return &ValidationError{Field: "vote_type", Constraint: "must be upvote or downvote"}
	}
	if vote.UserID == "" {
		return &ValidationError{Field: "user_id", Constraint: "is required"}
	}

	if err := s.repo.Upsert(ctx, vote); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ReportNotFoundError{ReportID: vote.ReportID}
		}
		log.WithError(err).Error("Failed to upsert vote in repository")
		return fmt.Errorf("service: could not save vote: %w", err)
	}

	log.WithField("vote_type", vote.Type).Info("Vote saved successfully")
	return nil
}

// RetractVote удаляет голос пользователя
func (s *voteService) RetractVote(ctx context.Context, reportID int64, userID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "vote",
		"method":    "RetractVote",
		"report_id": reportID,
		"user_id":   userID,
	})

	if err := s.repo.Delete(ctx, reportID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("service: vote of user %s on report %d: %w", userID, reportID, ErrNotFound)
		}
		log.WithError(err).Error("Failed to delete vote in repository")
		return fmt.Errorf("service: could not delete vote: %w", err)
	}

	log.Info("Vote retracted successfully")
	return nil
}
