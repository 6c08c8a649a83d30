package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"speedrun/app_error"
	"speedrun/client"
	"speedrun/metric"
	"speedrun/metrics"
	"speedrun/ranking"
	"speedrun/repository"
	"speedrun/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitRun struct {
	CategoryId  uuid.UUID
	Value       string
	EvidenceUrl string
	Notes       string
}

type Decision struct {
	Status          repository.RunStatus
	RejectionReason string
}

type LeaderboardEntry struct {
	Run          *repository.Run
	Rank         int
	DisplayValue string
}

type Leaderboard struct {
	Category *repository.Category
	Entries  []LeaderboardEntry
}

type RunService struct {
	runRepository      RunStore
	categoryRepository CategoryStore
	banRepository      BanStore
	activity           *ActivityService
	publisher          RunEventPublisher
	notifier           RecordNotifier
	logger             *zap.Logger
	now                func() time.Time
	reviews            sync.Map
}

func NewRunService(
	runRepository RunStore,
	categoryRepository CategoryStore,
	banRepository BanStore,
	activity *ActivityService,
	publisher RunEventPublisher,
	notifier RecordNotifier,
	logger *zap.Logger,
) *RunService {
	return &RunService{
		runRepository:      runRepository,
		categoryRepository: categoryRepository,
		banRepository:      banRepository,
		activity:           activity,
		publisher:          publisher,
		notifier:           notifier,
		logger:             logger,
		now:                time.Now,
	}
}

// Submit validates a run and stores it as pending. Nothing is written when
// any check fails.
func (s *RunService) Submit(ctx context.Context, actor *Actor, submit SubmitRun) (*repository.Run, error) {
	if err := requireActor(actor, "submitting a run"); err != nil {
		return nil, err
	}
	now := s.now()
	ban, err := activeBan(ctx, s.banRepository, actor.UserId, now)
	if err != nil {
		return nil, err
	}
	if ban != nil {
		return nil, fmt.Errorf("%w: banned users cannot submit runs", app_error.ErrUnauthorized)
	}
	category, err := s.categoryRepository.GetCategoryById(ctx, submit.CategoryId)
	if err != nil {
		return nil, err
	}
	value, err := metric.Encode(category.MetricType, submit.Value)
	if err != nil {
		return nil, err
	}
	if err := ValidateEvidenceUrl(submit.EvidenceUrl); err != nil {
		return nil, err
	}
	if err := validateNotes(submit.Notes); err != nil {
		return nil, err
	}

	run := &repository.Run{
		UserId:      actor.UserId,
		CategoryId:  category.Id,
		Value:       value,
		EvidenceUrl: strings.TrimSpace(submit.EvidenceUrl),
		Status:      repository.RunStatusPending,
		SubmittedAt: now,
	}
	if notes := strings.TrimSpace(submit.Notes); notes != "" {
		run.Notes = &notes
	}
	if err := s.runRepository.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	run.Category = category

	metrics.RunsSubmittedCounter.WithLabelValues(string(category.MetricType)).Inc()
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "run_submitted",
		Category:    ActivityRuns,
		Description: fmt.Sprintf("Submitted %s in %s", metric.Decode(category.MetricType, value), category.Name),
		Metadata:    map[string]any{"run_id": run.Id.String(), "category_id": category.Id.String()},
	})
	s.publish(ctx, client.RunSubmitted, run, actor)
	return run, nil
}

// Verify moves a pending run to approved or rejected. Approvals recompute the
// category's world record.
func (s *RunService) Verify(ctx context.Context, actor *Actor, runId uuid.UUID, decision Decision) (*repository.Run, error) {
	if err := requireModerator(actor, "verifying a run"); err != nil {
		return nil, err
	}
	if decision.Status != repository.RunStatusApproved && decision.Status != repository.RunStatusRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected, got %q", app_error.ErrInvalidFormat, decision.Status)
	}
	if _, busy := s.reviews.LoadOrStore(runId, struct{}{}); busy {
		metrics.ReviewConflictsCounter.Inc()
		return nil, fmt.Errorf("review of run %s already in progress: %w", runId, app_error.ErrConflictExternal)
	}
	defer s.reviews.Delete(runId)

	run, err := s.runRepository.GetRunById(ctx, runId)
	if err != nil {
		return nil, err
	}
	if run.Status != repository.RunStatusPending {
		return nil, fmt.Errorf("%w: run %s is already %s", app_error.ErrInvalidTransition, runId, run.Status)
	}

	review := repository.RunReview{
		Status:     decision.Status,
		VerifiedBy: actor.UserId,
		VerifiedAt: s.now(),
	}
	if reason := strings.TrimSpace(decision.RejectionReason); reason != "" && decision.Status == repository.RunStatusRejected {
		review.RejectionReason = &reason
	}
	reviewed, err := s.runRepository.ReviewRun(ctx, runId, review)
	if err != nil {
		if errors.Is(err, app_error.ErrConflictExternal) {
			metrics.ReviewConflictsCounter.Inc()
		}
		return nil, err
	}

	metrics.RunsReviewedCounter.WithLabelValues(string(reviewed.Status)).Inc()
	eventType := client.RunRejected
	if reviewed.Status == repository.RunStatusApproved {
		eventType = client.RunApproved
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   string(eventType),
		Category:     ActivityRuns,
		Description:  fmt.Sprintf("Marked run %s as %s", runId, reviewed.Status),
		TargetUserId: &reviewed.UserId,
		Metadata:     map[string]any{"run_id": runId.String(), "is_world_record": reviewed.IsWorldRecord},
	})
	s.publish(ctx, eventType, reviewed, actor)
	if reviewed.IsWorldRecord {
		metrics.WorldRecordsCounter.Inc()
		s.announceWorldRecord(ctx, reviewed)
	}
	return reviewed, nil
}

// DeleteRun lets owners withdraw their pending runs. Admins may delete any run.
func (s *RunService) DeleteRun(ctx context.Context, actor *Actor, runId uuid.UUID) error {
	if err := requireActor(actor, "deleting a run"); err != nil {
		return err
	}
	run, err := s.runRepository.GetRunById(ctx, runId)
	if err != nil {
		return err
	}
	owner := !actor.IsAdmin()
	if owner {
		if run.UserId != actor.UserId {
			return fmt.Errorf("%w: you can only delete your own runs", app_error.ErrUnauthorized)
		}
		if run.Status != repository.RunStatusPending {
			return fmt.Errorf("%w: run %s has already been %s", app_error.ErrInvalidTransition, runId, run.Status)
		}
	}
	// owners withdraw only while the stored run is still pending
	if err := s.runRepository.DeleteRun(ctx, run, owner); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   string(client.RunDeleted),
		Category:     ActivityRuns,
		Description:  fmt.Sprintf("Deleted run %s", runId),
		TargetUserId: &run.UserId,
		Metadata:     map[string]any{"run_id": runId.String(), "status": string(run.Status)},
	})
	s.publish(ctx, client.RunDeleted, run, actor)
	return nil
}

func (s *RunService) GetRun(ctx context.Context, runId uuid.UUID) (*repository.Run, error) {
	return s.runRepository.GetRunById(ctx, runId)
}

func (s *RunService) GetLeaderboard(ctx context.Context, categoryId uuid.UUID, limit int) (*Leaderboard, error) {
	category, err := s.categoryRepository.GetCategoryById(ctx, categoryId)
	if err != nil {
		return nil, err
	}
	runs, err := s.runRepository.GetLeaderboard(ctx, category, utils.Clamp(limit, 100, 500))
	if err != nil {
		return nil, err
	}
	ranked := ranking.Rank(category.MetricType, runs, (*repository.Run).RankEntry)
	return &Leaderboard{
		Category: category,
		Entries: utils.Map(ranked, func(r ranking.Ranked[*repository.Run]) LeaderboardEntry {
			return LeaderboardEntry{
				Run:          r.Item,
				Rank:         r.Rank,
				DisplayValue: metric.Decode(category.MetricType, r.Item.Value),
			}
		}),
	}, nil
}

func (s *RunService) GetRecentRuns(ctx context.Context, limit int) ([]*repository.Run, error) {
	return s.runRepository.GetRecentRuns(ctx, utils.Clamp(limit, 10, 100))
}

func (s *RunService) GetRunsForUser(ctx context.Context, userId uuid.UUID) ([]*repository.Run, error) {
	return s.runRepository.GetRunsForUser(ctx, userId)
}

func (s *RunService) GetPendingRuns(ctx context.Context, actor *Actor) ([]*repository.Run, error) {
	if err := requireModerator(actor, "listing pending runs"); err != nil {
		return nil, err
	}
	return s.runRepository.GetPendingRuns(ctx)
}

func (s *RunService) publish(ctx context.Context, eventType client.RunEventType, run *repository.Run, actor *Actor) {
	event := client.RunEvent{
		Type:          eventType,
		RunId:         run.Id.String(),
		UserId:        run.UserId.String(),
		CategoryId:    run.CategoryId.String(),
		Status:        string(run.Status),
		Value:         run.Value,
		IsWorldRecord: run.IsWorldRecord,
		ActorId:       actor.UserId.String(),
		Timestamp:     s.now(),
	}
	if err := s.publisher.PublishRunEvent(context.WithoutCancel(ctx), event); err != nil {
		metrics.NotificationErrorCounter.WithLabelValues("kafka").Inc()
		s.logger.Warn("could not publish run event", zap.String("type", string(eventType)), zap.Stringer("run", run.Id), zap.Error(err))
	}
}

func (s *RunService) announceWorldRecord(ctx context.Context, run *repository.Run) {
	record := client.WorldRecord{EvidenceUrl: run.EvidenceUrl}
	if run.User != nil {
		record.Username = run.User.Username
	}
	if run.Category != nil {
		record.CategoryName = run.Category.Name
		record.MetricLabel = metric.Label(run.Category.MetricType)
		record.DisplayValue = metric.Decode(run.Category.MetricType, run.Value)
		if run.Category.Gamemode != nil {
			record.GamemodeName = run.Category.Gamemode.Name
		}
	}
	if err := s.notifier.NotifyWorldRecord(context.WithoutCancel(ctx), record); err != nil {
		metrics.NotificationErrorCounter.WithLabelValues("discord").Inc()
		s.logger.Warn("could not announce world record", zap.Stringer("run", run.Id), zap.Error(err))
	}
}
