package service

import (
	"context"

	"speedrun/repository"
	"speedrun/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActivityCategory string

const (
	ActivityRuns          ActivityCategory = "runs"
	ActivityModeration    ActivityCategory = "moderation"
	ActivityUsers         ActivityCategory = "users"
	ActivityGamemodes     ActivityCategory = "gamemodes"
	ActivityAnnouncements ActivityCategory = "announcements"
)

type ActivityEntry struct {
	ActionType   string
	Category     ActivityCategory
	Description  string
	TargetUserId *uuid.UUID
	Metadata     map[string]any
}

type ActivityService struct {
	activityRepository ActivityStore
	logger             *zap.Logger
}

func NewActivityService(activityRepository ActivityStore, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepository: activityRepository,
		logger:             logger,
	}
}

// Record stores an audit entry. Failures are logged and never fail the
// operation that is being recorded.
func (s *ActivityService) Record(ctx context.Context, actor *Actor, entry ActivityEntry) {
	if actor == nil {
		return
	}
	activity := &repository.ActivityLog{
		ActionType:   entry.ActionType,
		Category:     string(entry.Category),
		Description:  entry.Description,
		PerformedBy:  actor.UserId,
		TargetUserId: entry.TargetUserId,
		Metadata:     entry.Metadata,
	}
	if err := s.activityRepository.SaveActivityLog(context.WithoutCancel(ctx), activity); err != nil {
		s.logger.Warn("could not record activity",
			zap.String("action", entry.ActionType),
			zap.Stringer("actor", actor.UserId),
			zap.Error(err),
		)
	}
}

func (s *ActivityService) GetActivityLogs(ctx context.Context, actor *Actor, category string, limit int) ([]*repository.ActivityLog, error) {
	if err := requireAdmin(actor, "listing activity"); err != nil {
		return nil, err
	}
	return s.activityRepository.GetActivityLogs(ctx, category, utils.Clamp(limit, 100, 500))
}
