package service

import (
	"context"

	"speedrun/client"
	"speedrun/repository"

	"github.com/google/uuid"
)

type RunStore interface {
	CreateRun(ctx context.Context, run *repository.Run) error
	GetRunById(ctx context.Context, runId uuid.UUID) (*repository.Run, error)
	GetLeaderboard(ctx context.Context, category *repository.Category, limit int) ([]*repository.Run, error)
	GetRecentRuns(ctx context.Context, limit int) ([]*repository.Run, error)
	GetRunsForUser(ctx context.Context, userId uuid.UUID) ([]*repository.Run, error)
	GetPendingRuns(ctx context.Context) ([]*repository.Run, error)
	ReviewRun(ctx context.Context, runId uuid.UUID, review repository.RunReview) (*repository.Run, error)
	DeleteRun(ctx context.Context, run *repository.Run, onlyPending bool) error
}

type CategoryStore interface {
	GetCategoryById(ctx context.Context, id uuid.UUID) (*repository.Category, error)
	GetCategoryBySlugs(ctx context.Context, gamemodeSlug string, categorySlug string) (*repository.Category, error)
	SaveCategory(ctx context.Context, category *repository.Category) (*repository.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type GamemodeStore interface {
	GetAllGamemodes(ctx context.Context) ([]*repository.Gamemode, error)
	GetGamemodeBySlug(ctx context.Context, slug string) (*repository.Gamemode, error)
	GetGamemodeById(ctx context.Context, id uuid.UUID) (*repository.Gamemode, error)
	SaveGamemode(ctx context.Context, gamemode *repository.Gamemode) (*repository.Gamemode, error)
	DeleteGamemode(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	GetProfileById(ctx context.Context, userId uuid.UUID) (*repository.Profile, error)
	GetAllProfiles(ctx context.Context) ([]*repository.Profile, error)
	SaveProfile(ctx context.Context, profile *repository.Profile) (*repository.Profile, error)
	GetRoles(ctx context.Context, userId uuid.UUID) ([]repository.Role, error)
	AddRole(ctx context.Context, userId uuid.UUID, role repository.Role) error
	RemoveRole(ctx context.Context, userId uuid.UUID, role repository.Role) error
}

type BanStore interface {
	GetBans(ctx context.Context) ([]*repository.Ban, error)
	GetBansForUser(ctx context.Context, userId uuid.UUID) ([]*repository.Ban, error)
	GetBanById(ctx context.Context, banId uuid.UUID) (*repository.Ban, error)
	CreateBan(ctx context.Context, ban *repository.Ban) error
	DeleteBan(ctx context.Context, banId uuid.UUID) error
}

type AnnouncementStore interface {
	GetAnnouncements(ctx context.Context) ([]*repository.Announcement, error)
	GetAnnouncementById(ctx context.Context, id uuid.UUID) (*repository.Announcement, error)
	SaveAnnouncement(ctx context.Context, announcement *repository.Announcement) (*repository.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
}

type ActivityStore interface {
	SaveActivityLog(ctx context.Context, activity *repository.ActivityLog) error
	GetActivityLogs(ctx context.Context, category string, limit int) ([]*repository.ActivityLog, error)
}

type RunEventPublisher interface {
	PublishRunEvent(ctx context.Context, event client.RunEvent) error
}

type RecordNotifier interface {
	NotifyWorldRecord(ctx context.Context, record client.WorldRecord) error
}
