package service

import (
	"context"
	"fmt"
	"strings"

	"speedrun/app_error"
	"speedrun/repository"

	"github.com/google/uuid"
)

type AnnouncementService struct {
	announcementRepository AnnouncementStore
	activity               *ActivityService
}

func NewAnnouncementService(announcementRepository AnnouncementStore, activity *ActivityService) *AnnouncementService {
	return &AnnouncementService{
		announcementRepository: announcementRepository,
		activity:               activity,
	}
}

func validateAnnouncement(title string, content string) (string, string, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", fmt.Errorf("%w: announcements need a title and content", app_error.ErrInvalidFormat)
	}
	return title, content, nil
}

func (s *AnnouncementService) GetAnnouncements(ctx context.Context) ([]*repository.Announcement, error) {
	return s.announcementRepository.GetAnnouncements(ctx)
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, actor *Actor, title string, content string) (*repository.Announcement, error) {
	if err := requireAdmin(actor, "creating an announcement"); err != nil {
		return nil, err
	}
	title, content, err := validateAnnouncement(title, content)
	if err != nil {
		return nil, err
	}
	announcement, err := s.announcementRepository.SaveAnnouncement(ctx, &repository.Announcement{
		Title:     title,
		Content:   content,
		CreatedBy: actor.UserId,
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "announcement_created",
		Category:    ActivityAnnouncements,
		Description: fmt.Sprintf("Posted announcement %q", title),
		Metadata:    map[string]any{"announcement_id": announcement.Id.String()},
	})
	return announcement, nil
}

func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, actor *Actor, id uuid.UUID, title string, content string) (*repository.Announcement, error) {
	if err := requireAdmin(actor, "updating an announcement"); err != nil {
		return nil, err
	}
	title, content, err := validateAnnouncement(title, content)
	if err != nil {
		return nil, err
	}
	announcement, err := s.announcementRepository.GetAnnouncementById(ctx, id)
	if err != nil {
		return nil, err
	}
	announcement.Title = title
	announcement.Content = content
	if announcement, err = s.announcementRepository.SaveAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "announcement_updated",
		Category:    ActivityAnnouncements,
		Description: fmt.Sprintf("Edited announcement %q", title),
		Metadata:    map[string]any{"announcement_id": id.String()},
	})
	return announcement, nil
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if err := requireAdmin(actor, "deleting an announcement"); err != nil {
		return err
	}
	if err := s.announcementRepository.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "announcement_deleted",
		Category:    ActivityAnnouncements,
		Description: "Deleted an announcement",
		Metadata:    map[string]any{"announcement_id": id.String()},
	})
	return nil
}
