package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"speedrun/app_error"
	"speedrun/client"
	"speedrun/metric"
	"speedrun/repository"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (f *fixture) submit(t *testing.T, actor *Actor, category *repository.Category, value string) *repository.Run {
	t.Helper()
	run, err := f.services.Runs.Submit(context.Background(), actor, SubmitRun{
		CategoryId:  category.Id,
		Value:       value,
		EvidenceUrl: evidence,
	})
	require.NoError(t, err)
	return run
}

func (f *fixture) approve(t *testing.T, run *repository.Run) *repository.Run {
	t.Helper()
	reviewed, err := f.services.Runs.Verify(context.Background(), f.moderator, run.Id, Decision{Status: repository.RunStatusApproved})
	require.NoError(t, err)
	return reviewed
}

func TestSubmitCreatesPendingRun(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)

	run, err := f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{
		CategoryId:  category.Id,
		Value:       "5:23.456",
		EvidenceUrl: evidence,
		Notes:       "  first try  ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(323456), run.Value)
	assert.Equal(t, repository.RunStatusPending, run.Status)
	assert.Equal(t, f.runner.UserId, run.UserId)
	assert.Nil(t, run.VerifiedBy)
	assert.Nil(t, run.VerifiedAt)
	assert.False(t, run.IsWorldRecord)
	require.NotNil(t, run.Notes)
	assert.Equal(t, "first try", *run.Notes)

	assert.Len(t, f.runs.runs, 1)
	assert.Equal(t, []string{"run_submitted"}, f.activityLogs.actions())
	assert.Equal(t, []client.RunEventType{client.RunSubmitted}, f.publisher.types())
}

func TestSubmitInvalidCountValueStoresNothing(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Count)

	_, err := f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{
		CategoryId:  category.Id,
		Value:       "abc",
		EvidenceUrl: evidence,
	})
	assert.ErrorIs(t, err, app_error.ErrInvalidFormat)
	assert.Empty(t, f.runs.runs)
	assert.Empty(t, f.publisher.events)
	assert.Empty(t, f.activityLogs.logs)
}

func TestSubmitRequiresSignedInUser(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)

	_, err := f.services.Runs.Submit(context.Background(), nil, SubmitRun{CategoryId: category.Id, Value: "5:00", EvidenceUrl: evidence})
	assert.ErrorIs(t, err, app_error.ErrUnauthorized)
	assert.ErrorIs(t, err, app_error.ErrUnauthenticated)
	assert.Empty(t, f.runs.runs)
}

func TestSubmitByBannedUser(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	expired := f.clock.Add(-time.Hour)
	f.bans.bans[uuid.New()] = &repository.Ban{UserId: f.runner.UserId, ExpiresAt: &expired}

	f.submit(t, f.runner, category, "5:00")

	future := f.clock.Add(time.Hour)
	f.bans.bans[uuid.New()] = &repository.Ban{UserId: f.runner.UserId, ExpiresAt: &future}
	_, err := f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{CategoryId: category.Id, Value: "5:00", EvidenceUrl: evidence})
	assert.ErrorIs(t, err, app_error.ErrUnauthorized)
	assert.Len(t, f.runs.runs, 1)
}

func TestSubmitUnknownCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{CategoryId: uuid.New(), Value: "5:00", EvidenceUrl: evidence})
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestSubmitValidatesEvidenceAndNotes(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Score)

	_, err := f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{CategoryId: category.Id, Value: "100", EvidenceUrl: "https://vimeo.com/1"})
	assert.ErrorIs(t, err, app_error.ErrInvalidFormat)

	_, err = f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{
		CategoryId:  category.Id,
		Value:       "100",
		EvidenceUrl: evidence,
		Notes:       strings.Repeat("é", maxNotesLength+1),
	})
	assert.ErrorIs(t, err, app_error.ErrInvalidFormat)

	_, err = f.services.Runs.Submit(context.Background(), f.runner, SubmitRun{
		CategoryId:  category.Id,
		Value:       "100",
		EvidenceUrl: evidence,
		Notes:       strings.Repeat("é", maxNotesLength),
	})
	assert.NoError(t, err)
	assert.Len(t, f.runs.runs, 1)
}

func TestVerifyStatusPaths(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)

	approved := f.approve(t, f.submit(t, f.runner, category, "5:00"))
	assert.Equal(t, repository.RunStatusApproved, approved.Status)
	require.NotNil(t, approved.VerifiedBy)
	assert.Equal(t, f.moderator.UserId, *approved.VerifiedBy)
	assert.NotNil(t, approved.VerifiedAt)
	assert.Nil(t, approved.RejectionReason)

	rejected, err := f.services.Runs.Verify(context.Background(), f.admin, f.submit(t, f.runner, category, "4:00").Id, Decision{
		Status:          repository.RunStatusRejected,
		RejectionReason: "timer not visible",
	})
	require.NoError(t, err)
	assert.Equal(t, repository.RunStatusRejected, rejected.Status)
	assert.False(t, rejected.IsWorldRecord)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "timer not visible", *rejected.RejectionReason)

	assert.Equal(t, []client.RunEventType{client.RunSubmitted, client.RunApproved, client.RunSubmitted, client.RunRejected}, f.publisher.types())
}

func TestVerifyTwiceFailsWithInvalidTransition(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00")

	f.approve(t, run)
	_, err := f.services.Runs.Verify(context.Background(), f.moderator, run.Id, Decision{Status: repository.RunStatusRejected})
	assert.ErrorIs(t, err, app_error.ErrInvalidTransition)
	assert.Equal(t, repository.RunStatusApproved, f.runs.runs[run.Id].Status)
}

func TestVerifyRequiresModerator(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00")

	for _, actor := range []*Actor{nil, f.runner, f.other} {
		_, err := f.services.Runs.Verify(context.Background(), actor, run.Id, Decision{Status: repository.RunStatusApproved})
		assert.ErrorIs(t, err, app_error.ErrUnauthorized)
	}
	assert.Equal(t, repository.RunStatusPending, f.runs.runs[run.Id].Status)
}

func TestVerifyRejectsNonTerminalDecision(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00")

	for _, status := range []repository.RunStatus{repository.RunStatusPending, "archived", ""} {
		_, err := f.services.Runs.Verify(context.Background(), f.moderator, run.Id, Decision{Status: status})
		assert.ErrorIs(t, err, app_error.ErrInvalidFormat)
	}
}

func TestVerifyUnknownRun(t *testing.T) {
	f := newFixture(t)
	_, err := f.services.Runs.Verify(context.Background(), f.moderator, uuid.New(), Decision{Status: repository.RunStatusApproved})
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestVerifyPropagatesStoreConflict(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00")
	f.runs.reviewErr = app_error.ErrConflictExternal

	_, err := f.services.Runs.Verify(context.Background(), f.moderator, run.Id, Decision{Status: repository.RunStatusApproved})
	assert.ErrorIs(t, err, app_error.ErrConflictExternal)
	assert.True(t, app_error.IsRetryable(err))
	assert.Equal(t, []client.RunEventType{client.RunSubmitted}, f.publisher.types())
}

func TestConcurrentVerifyOfSameRunIsRejected(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00")

	entered := make(chan struct{})
	release := make(chan struct{})
	f.runs.onReview = func() {
		close(entered)
		<-release
	}
	done := make(chan error)
	go func() {
		_, err := f.services.Runs.Verify(context.Background(), f.moderator, run.Id, Decision{Status: repository.RunStatusApproved})
		done <- err
	}()
	<-entered

	_, err := f.services.Runs.Verify(context.Background(), f.admin, run.Id, Decision{Status: repository.RunStatusRejected})
	assert.ErrorIs(t, err, app_error.ErrConflictExternal)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, repository.RunStatusApproved, f.runs.runs[run.Id].Status)

	// the guard is released once the first review finished
	f.runs.onReview = nil
	_, err = f.services.Runs.Verify(context.Background(), f.admin, run.Id, Decision{Status: repository.RunStatusRejected})
	assert.ErrorIs(t, err, app_error.ErrInvalidTransition)
}

func TestApprovalsMoveWorldRecord(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)

	first := f.approve(t, f.submit(t, f.runner, category, "5:00.000"))
	assert.True(t, first.IsWorldRecord)
	require.Len(t, f.notifier.records, 1)
	assert.Equal(t, client.WorldRecord{
		Username:     "runner",
		GamemodeName: "Survival",
		CategoryName: category.Name,
		MetricLabel:  "Time",
		DisplayValue: "5:00.000",
		EvidenceUrl:  evidence,
	}, f.notifier.records[0])

	faster := f.approve(t, f.submit(t, f.other, category, "4:59.999"))
	assert.True(t, faster.IsWorldRecord)
	assert.Equal(t, []uuid.UUID{faster.Id}, f.runs.worldRecords(category.Id))

	// an equal time submitted later does not take the record
	tied := f.approve(t, f.submit(t, f.runner, category, "4:59.999"))
	assert.False(t, tied.IsWorldRecord)
	assert.Equal(t, []uuid.UUID{faster.Id}, f.runs.worldRecords(category.Id))
	assert.Len(t, f.notifier.records, 2)
}

func TestRejectionNeverSetsWorldRecord(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Score)

	rejected, err := f.services.Runs.Verify(context.Background(), f.moderator, f.submit(t, f.runner, category, "1,000,000").Id, Decision{Status: repository.RunStatusRejected})
	require.NoError(t, err)
	assert.False(t, rejected.IsWorldRecord)
	assert.Empty(t, f.runs.worldRecords(category.Id))
	assert.Empty(t, f.notifier.records)
}

func TestNotificationFailuresDoNotFailOperations(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Count)
	f.publisher.err = errors.New("broker down")
	f.notifier.err = errors.New("discord down")
	f.activityLogs.err = errors.New("database down")

	run := f.submit(t, f.runner, category, "25")
	reviewed := f.approve(t, run)
	assert.True(t, reviewed.IsWorldRecord)
	assert.Len(t, f.notifier.records, 1)
}

func TestDeleteRun(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Score)

	pending := f.submit(t, f.runner, category, "100")
	err := f.services.Runs.DeleteRun(context.Background(), f.other, pending.Id)
	assert.ErrorIs(t, err, app_error.ErrUnauthorized)
	require.NoError(t, f.services.Runs.DeleteRun(context.Background(), f.runner, pending.Id))
	assert.NotContains(t, f.runs.runs, pending.Id)

	best := f.approve(t, f.submit(t, f.runner, category, "300"))
	second := f.approve(t, f.submit(t, f.other, category, "200"))
	err = f.services.Runs.DeleteRun(context.Background(), f.runner, best.Id)
	assert.ErrorIs(t, err, app_error.ErrInvalidTransition)

	require.NoError(t, f.services.Runs.DeleteRun(context.Background(), f.admin, best.Id))
	assert.Equal(t, []uuid.UUID{second.Id}, f.runs.worldRecords(category.Id))
	assert.Contains(t, f.publisher.types(), client.RunDeleted)

	err = f.services.Runs.DeleteRun(context.Background(), nil, second.Id)
	assert.ErrorIs(t, err, app_error.ErrUnauthenticated)
}

type stalledBroker struct {
	release chan struct{}
}

func (b *stalledBroker) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestSubmitDoesNotWaitForBroker(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	broker := &stalledBroker{release: make(chan struct{})}
	publisher := client.NewAsyncRunPublisher(client.NewKafkaRunPublisher(broker), zap.NewNop(), 16)
	t.Cleanup(func() {
		close(broker.release)
		publisher.Close()
	})
	f.services.Runs.publisher = publisher

	start := time.Now()
	run := f.submit(t, f.runner, category, "5:00.000")
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, repository.RunStatusPending, run.Status)
}

func TestOwnerDeleteLosesToConcurrentApproval(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	run := f.submit(t, f.runner, category, "5:00.000")

	f.runs.onDelete = func() {
		_, err := f.runs.ReviewRun(context.Background(), run.Id, repository.RunReview{
			Status:     repository.RunStatusApproved,
			VerifiedBy: f.moderator.UserId,
			VerifiedAt: time.Now(),
		})
		require.NoError(t, err)
	}
	err := f.services.Runs.DeleteRun(context.Background(), f.runner, run.Id)
	assert.ErrorIs(t, err, app_error.ErrConflictExternal)
	assert.True(t, app_error.IsRetryable(err))

	stored, err := f.services.Runs.GetRun(context.Background(), run.Id)
	require.NoError(t, err)
	assert.Equal(t, repository.RunStatusApproved, stored.Status)
	assert.Equal(t, []uuid.UUID{run.Id}, f.runs.worldRecords(category.Id))
	assert.NotContains(t, f.publisher.types(), client.RunDeleted)
}

func TestLeaderboardRanksAndDisplays(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Score)

	low := f.approve(t, f.submit(t, f.runner, category, "9,999"))
	high := f.approve(t, f.submit(t, f.other, category, "10000"))
	f.submit(t, f.other, category, "50000")

	leaderboard, err := f.services.Runs.GetLeaderboard(context.Background(), category.Id, 0)
	require.NoError(t, err)
	assert.Equal(t, category.Id, leaderboard.Category.Id)
	require.Len(t, leaderboard.Entries, 2)
	assert.Equal(t, high.Id, leaderboard.Entries[0].Run.Id)
	assert.Equal(t, 1, leaderboard.Entries[0].Rank)
	assert.Equal(t, "10,000", leaderboard.Entries[0].DisplayValue)
	assert.Equal(t, low.Id, leaderboard.Entries[1].Run.Id)
	assert.Equal(t, 2, leaderboard.Entries[1].Rank)
	assert.Equal(t, "9,999", leaderboard.Entries[1].DisplayValue)

	_, err = f.services.Runs.GetLeaderboard(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestPendingRunsRequireModerator(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(metric.Time)
	f.submit(t, f.runner, category, "5:00")

	_, err := f.services.Runs.GetPendingRuns(context.Background(), f.runner)
	assert.ErrorIs(t, err, app_error.ErrUnauthorized)

	pending, err := f.services.Runs.GetPendingRuns(context.Background(), f.moderator)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
