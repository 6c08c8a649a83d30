package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"speedrun/app_error"
	"speedrun/client"
	"speedrun/metric"
	"speedrun/ranking"
	"speedrun/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func notFound(entity string, id any) error {
	return fmt.Errorf("%w: %s %v", app_error.ErrNotFound, entity, id)
}

type fakeCategoryStore struct {
	categories map[uuid.UUID]*repository.Category
}

func (s *fakeCategoryStore) GetCategoryById(_ context.Context, id uuid.UUID) (*repository.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, notFound("category", id)
	}
	c := *category
	return &c, nil
}

func (s *fakeCategoryStore) GetCategoryBySlugs(_ context.Context, gamemodeSlug string, categorySlug string) (*repository.Category, error) {
	for _, category := range s.categories {
		if category.Slug == categorySlug && category.Gamemode != nil && category.Gamemode.Slug == gamemodeSlug {
			c := *category
			return &c, nil
		}
	}
	return nil, notFound("category", categorySlug)
}

func (s *fakeCategoryStore) SaveCategory(_ context.Context, category *repository.Category) (*repository.Category, error) {
	if category.Id == uuid.Nil {
		category.Id = uuid.New()
	}
	c := *category
	s.categories[category.Id] = &c
	return category, nil
}

func (s *fakeCategoryStore) DeleteCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := s.categories[id]; !ok {
		return notFound("category", id)
	}
	delete(s.categories, id)
	return nil
}

type fakeGamemodeStore struct {
	gamemodes map[uuid.UUID]*repository.Gamemode
}

func (s *fakeGamemodeStore) GetAllGamemodes(context.Context) ([]*repository.Gamemode, error) {
	gamemodes := make([]*repository.Gamemode, 0, len(s.gamemodes))
	for _, g := range s.gamemodes {
		gamemodes = append(gamemodes, g)
	}
	return gamemodes, nil
}

func (s *fakeGamemodeStore) GetGamemodeBySlug(_ context.Context, slug string) (*repository.Gamemode, error) {
	for _, g := range s.gamemodes {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, notFound("gamemode", slug)
}

func (s *fakeGamemodeStore) GetGamemodeById(_ context.Context, id uuid.UUID) (*repository.Gamemode, error) {
	g, ok := s.gamemodes[id]
	if !ok {
		return nil, notFound("gamemode", id)
	}
	return g, nil
}

func (s *fakeGamemodeStore) SaveGamemode(_ context.Context, gamemode *repository.Gamemode) (*repository.Gamemode, error) {
	for _, g := range s.gamemodes {
		if g.Slug == gamemode.Slug && g.Id != gamemode.Id {
			return nil, fmt.Errorf("%w: gamemode %q", app_error.ErrConflict, gamemode.Slug)
		}
	}
	if gamemode.Id == uuid.Nil {
		gamemode.Id = uuid.New()
	}
	s.gamemodes[gamemode.Id] = gamemode
	return gamemode, nil
}

func (s *fakeGamemodeStore) DeleteGamemode(_ context.Context, id uuid.UUID) error {
	if _, ok := s.gamemodes[id]; !ok {
		return notFound("gamemode", id)
	}
	delete(s.gamemodes, id)
	return nil
}

type fakeRunStore struct {
	mu         sync.Mutex
	runs       map[uuid.UUID]*repository.Run
	categories *fakeCategoryStore
	users      *fakeUserStore
	reviewErr  error
	// onReview runs inside ReviewRun before the update is applied.
	onReview func()
	// onDelete runs inside DeleteRun before the stored run is checked.
	onDelete func()
}

func (s *fakeRunStore) load(run *repository.Run) *repository.Run {
	r := *run
	if category, ok := s.categories.categories[r.CategoryId]; ok {
		c := *category
		r.Category = &c
	}
	if profile, ok := s.users.profiles[r.UserId]; ok {
		r.User = profile
	}
	return &r
}

func (s *fakeRunStore) CreateRun(_ context.Context, run *repository.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run.Id == uuid.Nil {
		run.Id = uuid.New()
	}
	r := *run
	s.runs[run.Id] = &r
	return nil
}

func (s *fakeRunStore) GetRunById(_ context.Context, runId uuid.UUID) (*repository.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runId]
	if !ok {
		return nil, notFound("run", runId)
	}
	return s.load(run), nil
}

func (s *fakeRunStore) filter(keep func(*repository.Run) bool) []*repository.Run {
	runs := make([]*repository.Run, 0)
	for _, run := range s.runs {
		if keep(run) {
			runs = append(runs, s.load(run))
		}
	}
	return runs
}

func (s *fakeRunStore) GetLeaderboard(_ context.Context, category *repository.Category, limit int) ([]*repository.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runs := s.filter(func(r *repository.Run) bool {
		return r.CategoryId == category.Id && r.Status == repository.RunStatusApproved
	})
	// storage order is irrelevant, the service ranks
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *fakeRunStore) GetRecentRuns(_ context.Context, limit int) ([]*repository.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runs := s.filter(func(r *repository.Run) bool { return r.Status == repository.RunStatusApproved })
	slices.SortFunc(runs, func(a, b *repository.Run) int { return b.SubmittedAt.Compare(a.SubmittedAt) })
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *fakeRunStore) GetRunsForUser(_ context.Context, userId uuid.UUID) ([]*repository.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(r *repository.Run) bool { return r.UserId == userId }), nil
}

func (s *fakeRunStore) GetPendingRuns(context.Context) ([]*repository.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(r *repository.Run) bool { return r.Status == repository.RunStatusPending }), nil
}

func (s *fakeRunStore) ReviewRun(_ context.Context, runId uuid.UUID, review repository.RunReview) (*repository.Run, error) {
	if s.onReview != nil {
		s.onReview()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reviewErr != nil {
		return nil, s.reviewErr
	}
	run, ok := s.runs[runId]
	if !ok || run.Status != repository.RunStatusPending {
		return nil, fmt.Errorf("review of run %s: %w", runId, app_error.ErrConflictExternal)
	}
	run.Status = review.Status
	run.VerifiedBy = &review.VerifiedBy
	verifiedAt := review.VerifiedAt
	run.VerifiedAt = &verifiedAt
	run.RejectionReason = review.RejectionReason
	if review.Status == repository.RunStatusApproved {
		s.recompute(run.CategoryId)
	}
	return s.load(run), nil
}

func (s *fakeRunStore) recompute(categoryId uuid.UUID) {
	approved := make([]*repository.Run, 0)
	for _, r := range s.runs {
		if r.CategoryId == categoryId {
			r.IsWorldRecord = false
			if r.Status == repository.RunStatusApproved {
				approved = append(approved, r)
			}
		}
	}
	kind := s.categories.categories[categoryId].MetricType
	if best, ok := ranking.Best(kind, approved, (*repository.Run).RankEntry); ok {
		best.IsWorldRecord = true
	}
}

func (s *fakeRunStore) DeleteRun(_ context.Context, run *repository.Run, onlyPending bool) error {
	if s.onDelete != nil {
		s.onDelete()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.runs[run.Id]
	if !ok {
		return notFound("run", run.Id)
	}
	if onlyPending && stored.Status != repository.RunStatusPending {
		return fmt.Errorf("delete of run %s: %w", run.Id, app_error.ErrConflictExternal)
	}
	delete(s.runs, run.Id)
	if stored.IsWorldRecord {
		s.recompute(stored.CategoryId)
	}
	return nil
}

func (s *fakeRunStore) worldRecords(categoryId uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0)
	for _, r := range s.runs {
		if r.CategoryId == categoryId && r.IsWorldRecord {
			ids = append(ids, r.Id)
		}
	}
	return ids
}

type fakeUserStore struct {
	profiles map[uuid.UUID]*repository.Profile
}

func (s *fakeUserStore) GetProfileById(_ context.Context, userId uuid.UUID) (*repository.Profile, error) {
	profile, ok := s.profiles[userId]
	if !ok {
		return nil, notFound("user", userId)
	}
	return profile, nil
}

func (s *fakeUserStore) GetAllProfiles(context.Context) ([]*repository.Profile, error) {
	profiles := make([]*repository.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *fakeUserStore) SaveProfile(_ context.Context, profile *repository.Profile) (*repository.Profile, error) {
	s.profiles[profile.Id] = profile
	return profile, nil
}

func (s *fakeUserStore) GetRoles(_ context.Context, userId uuid.UUID) ([]repository.Role, error) {
	profile, err := s.GetProfileById(context.Background(), userId)
	if err != nil {
		return nil, err
	}
	return profile.RoleNames(), nil
}

func (s *fakeUserStore) AddRole(_ context.Context, userId uuid.UUID, role repository.Role) error {
	profile, ok := s.profiles[userId]
	if !ok {
		return notFound("user", userId)
	}
	for _, r := range profile.Roles {
		if r.Role == role {
			return fmt.Errorf("%w: role %s", app_error.ErrConflict, role)
		}
	}
	profile.Roles = append(profile.Roles, &repository.UserRole{Id: uuid.New(), UserId: userId, Role: role})
	return nil
}

func (s *fakeUserStore) RemoveRole(_ context.Context, userId uuid.UUID, role repository.Role) error {
	profile, ok := s.profiles[userId]
	if !ok {
		return notFound("user", userId)
	}
	for i, r := range profile.Roles {
		if r.Role == role {
			profile.Roles = slices.Delete(profile.Roles, i, i+1)
			return nil
		}
	}
	return notFound("role", role)
}

type fakeBanStore struct {
	bans map[uuid.UUID]*repository.Ban
}

func (s *fakeBanStore) GetBans(context.Context) ([]*repository.Ban, error) {
	bans := make([]*repository.Ban, 0, len(s.bans))
	for _, b := range s.bans {
		bans = append(bans, b)
	}
	return bans, nil
}

func (s *fakeBanStore) GetBansForUser(_ context.Context, userId uuid.UUID) ([]*repository.Ban, error) {
	bans := make([]*repository.Ban, 0)
	for _, b := range s.bans {
		if b.UserId == userId {
			bans = append(bans, b)
		}
	}
	return bans, nil
}

func (s *fakeBanStore) GetBanById(_ context.Context, banId uuid.UUID) (*repository.Ban, error) {
	ban, ok := s.bans[banId]
	if !ok {
		return nil, notFound("ban", banId)
	}
	return ban, nil
}

func (s *fakeBanStore) CreateBan(_ context.Context, ban *repository.Ban) error {
	if ban.Id == uuid.Nil {
		ban.Id = uuid.New()
	}
	s.bans[ban.Id] = ban
	return nil
}

func (s *fakeBanStore) DeleteBan(_ context.Context, banId uuid.UUID) error {
	if _, ok := s.bans[banId]; !ok {
		return notFound("ban", banId)
	}
	delete(s.bans, banId)
	return nil
}

type fakeAnnouncementStore struct {
	announcements map[uuid.UUID]*repository.Announcement
}

func (s *fakeAnnouncementStore) GetAnnouncements(context.Context) ([]*repository.Announcement, error) {
	announcements := make([]*repository.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		announcements = append(announcements, a)
	}
	return announcements, nil
}

func (s *fakeAnnouncementStore) GetAnnouncementById(_ context.Context, id uuid.UUID) (*repository.Announcement, error) {
	a, ok := s.announcements[id]
	if !ok {
		return nil, notFound("announcement", id)
	}
	return a, nil
}

func (s *fakeAnnouncementStore) SaveAnnouncement(_ context.Context, announcement *repository.Announcement) (*repository.Announcement, error) {
	if announcement.Id == uuid.Nil {
		announcement.Id = uuid.New()
	}
	s.announcements[announcement.Id] = announcement
	return announcement, nil
}

func (s *fakeAnnouncementStore) DeleteAnnouncement(_ context.Context, id uuid.UUID) error {
	if _, ok := s.announcements[id]; !ok {
		return notFound("announcement", id)
	}
	delete(s.announcements, id)
	return nil
}

type fakeActivityStore struct {
	mu   sync.Mutex
	logs []*repository.ActivityLog
	err  error
}

func (s *fakeActivityStore) SaveActivityLog(_ context.Context, activity *repository.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, activity)
	return nil
}

func (s *fakeActivityStore) GetActivityLogs(_ context.Context, category string, limit int) ([]*repository.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs := make([]*repository.ActivityLog, 0)
	for _, l := range s.logs {
		if category == "" || l.Category == category {
			logs = append(logs, l)
		}
	}
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *fakeActivityStore) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.logs))
	for i, l := range s.logs {
		actions[i] = l.ActionType
	}
	return actions
}

type fakePublisher struct {
	mu     sync.Mutex
	events []client.RunEvent
	err    error
}

func (p *fakePublisher) PublishRunEvent(_ context.Context, event client.RunEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []client.RunEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]client.RunEventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fakeNotifier struct {
	mu      sync.Mutex
	records []client.WorldRecord
	err     error
}

func (n *fakeNotifier) NotifyWorldRecord(_ context.Context, record client.WorldRecord) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records = append(n.records, record)
	return n.err
}

type fixture struct {
	runs          *fakeRunStore
	categories    *fakeCategoryStore
	gamemodes     *fakeGamemodeStore
	users         *fakeUserStore
	bans          *fakeBanStore
	announcements *fakeAnnouncementStore
	activityLogs  *fakeActivityStore
	publisher     *fakePublisher
	notifier      *fakeNotifier
	services      *Services
	clock         time.Time

	admin     *Actor
	moderator *Actor
	runner    *Actor
	other     *Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		categories:    &fakeCategoryStore{categories: map[uuid.UUID]*repository.Category{}},
		gamemodes:     &fakeGamemodeStore{gamemodes: map[uuid.UUID]*repository.Gamemode{}},
		users:         &fakeUserStore{profiles: map[uuid.UUID]*repository.Profile{}},
		bans:          &fakeBanStore{bans: map[uuid.UUID]*repository.Ban{}},
		announcements: &fakeAnnouncementStore{announcements: map[uuid.UUID]*repository.Announcement{}},
		activityLogs:  &fakeActivityStore{},
		publisher:     &fakePublisher{},
		notifier:      &fakeNotifier{},
		clock:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.runs = &fakeRunStore{runs: map[uuid.UUID]*repository.Run{}, categories: f.categories, users: f.users}

	logger := zap.NewNop()
	activity := NewActivityService(f.activityLogs, logger)
	f.services = &Services{
		Runs:          NewRunService(f.runs, f.categories, f.bans, activity, f.publisher, f.notifier, logger),
		Gamemodes:     NewGamemodeService(f.gamemodes, f.categories, activity),
		Users:         NewUserService(f.users, activity),
		Bans:          NewBanService(f.bans, f.users, activity, logger),
		Announcements: NewAnnouncementService(f.announcements, activity),
		Activity:      activity,
	}
	// every reading of the clock is one second later than the last
	tick := func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	f.services.Runs.now = tick
	f.services.Bans.now = tick

	f.admin = f.addUser("admin", repository.RoleAdmin)
	f.moderator = f.addUser("moderator", repository.RoleModerator)
	f.runner = f.addUser("runner")
	f.other = f.addUser("other")
	return f
}

func (f *fixture) addUser(username string, roles ...repository.Role) *Actor {
	profile := &repository.Profile{Id: uuid.New(), Username: username}
	for _, role := range roles {
		profile.Roles = append(profile.Roles, &repository.UserRole{Id: uuid.New(), UserId: profile.Id, Role: role})
	}
	f.users.profiles[profile.Id] = profile
	return &Actor{UserId: profile.Id, Roles: profile.RoleNames()}
}

func (f *fixture) addCategory(kind metric.Kind) *repository.Category {
	gamemode := &repository.Gamemode{Id: uuid.New(), Name: "Survival", Slug: "survival-" + string(kind)}
	f.gamemodes.gamemodes[gamemode.Id] = gamemode
	category := &repository.Category{
		Id:         uuid.New(),
		GamemodeId: gamemode.Id,
		Name:       "Any% " + string(kind),
		Slug:       "any-" + string(kind),
		MetricType: kind,
		Gamemode:   gamemode,
	}
	f.categories.categories[category.Id] = category
	return category
}

const evidence = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
