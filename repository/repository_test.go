package repository_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"speedrun/config"
	"speedrun/metric"
	"speedrun/repository"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const schemaName = "speedrun"

var db *gorm.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("Could not construct pool, database tests are skipped: %s", err)
		return m.Run()
	}

	// uses pool to try to connect to Docker
	if err = pool.Client.Ping(); err != nil {
		log.Printf("Could not connect to Docker, database tests are skipped: %s", err)
		return m.Run()
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // hard kill the container after 10 minutes
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()

	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=%s",
		resource.GetPort("5432/tcp"), schemaName)

	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), config.GormConfig(schemaName))
		if err != nil {
			return err
		}
		return config.Migrate(db, schemaName)
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}
	return m.Run()
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if db == nil {
		t.Skip("docker is not available")
	}
	t.Cleanup(tearDown)
	return db
}

func tearDown() {
	for _, table := range []string{"activity_logs", "announcements", "bans", "runs", "categories", "gamemodes", "user_roles", "profiles"} {
		db.Exec(fmt.Sprintf("DELETE FROM %s.%s", schemaName, table))
	}
}

type fixture struct {
	ctx        context.Context
	users      *repository.UserRepository
	gamemodes  *repository.GamemodeRepository
	categories *repository.CategoryRepository
	runs       *repository.RunRepository
	bans       *repository.BanRepository
}

func newFixture(t *testing.T) *fixture {
	db := requireDB(t)
	return &fixture{
		ctx:        context.Background(),
		users:      repository.NewUserRepository(db),
		gamemodes:  repository.NewGamemodeRepository(db),
		categories: repository.NewCategoryRepository(db),
		runs:       repository.NewRunRepository(db),
		bans:       repository.NewBanRepository(db),
	}
}

func (f *fixture) profile(t *testing.T, name string) *repository.Profile {
	t.Helper()
	profile, err := f.users.SaveProfile(f.ctx, &repository.Profile{Username: name})
	require.NoError(t, err)
	return profile
}

func (f *fixture) category(t *testing.T, kind metric.Kind) *repository.Category {
	t.Helper()
	gamemode, err := f.gamemodes.SaveGamemode(f.ctx, &repository.Gamemode{Name: "Survival", Slug: "survival"})
	require.NoError(t, err)
	category, err := f.categories.SaveCategory(f.ctx, &repository.Category{
		GamemodeId: gamemode.Id,
		Name:       "Any%",
		Slug:       "any",
		MetricType: kind,
	})
	require.NoError(t, err)
	return category
}

func (f *fixture) pending(t *testing.T, category *repository.Category, user *repository.Profile, value int64, at time.Time) *repository.Run {
	t.Helper()
	run := &repository.Run{
		UserId:      user.Id,
		CategoryId:  category.Id,
		Value:       value,
		EvidenceUrl: "https://youtu.be/dQw4w9WgXcQ",
		Status:      repository.RunStatusPending,
		SubmittedAt: at,
	}
	require.NoError(t, f.runs.CreateRun(f.ctx, run))
	return run
}

func (f *fixture) approve(t *testing.T, run *repository.Run, reviewer *repository.Profile) *repository.Run {
	t.Helper()
	reviewed, err := f.runs.ReviewRun(f.ctx, run.Id, repository.RunReview{
		Status:     repository.RunStatusApproved,
		VerifiedBy: reviewer.Id,
		VerifiedAt: time.Now(),
	})
	require.NoError(t, err)
	return reviewed
}
