package service

import (
	"speedrun/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Services struct {
	Runs          *RunService
	Gamemodes     *GamemodeService
	Users         *UserService
	Bans          *BanService
	Announcements *AnnouncementService
	Activity      *ActivityService
}

func NewServices(db *gorm.DB, publisher RunEventPublisher, notifier RecordNotifier, logger *zap.Logger) *Services {
	runs := repository.NewRunRepository(db)
	categories := repository.NewCategoryRepository(db)
	gamemodes := repository.NewGamemodeRepository(db)
	users := repository.NewUserRepository(db)
	bans := repository.NewBanRepository(db)
	announcements := repository.NewAnnouncementRepository(db)

	activity := NewActivityService(repository.NewActivityRepository(db), logger)
	return &Services{
		Runs:          NewRunService(runs, categories, bans, activity, publisher, notifier, logger),
		Gamemodes:     NewGamemodeService(gamemodes, categories, activity),
		Users:         NewUserService(users, activity),
		Bans:          NewBanService(bans, users, activity, logger),
		Announcements: NewAnnouncementService(announcements, activity),
		Activity:      activity,
	}
}
