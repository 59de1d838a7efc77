package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const ContentPageSize = 10

type EventService struct {
	events application.EventRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewEventService(events application.EventRepository, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: logger, now: time.Now}
}

func (s *EventService) List(ctx context.Context, window domain.EventWindow, page domain.Page) (domain.PageResult[*domain.Event], error) {
	switch window {
	case domain.EventsAll, domain.EventsUpcoming, domain.EventsPast:
	default:
		return domain.PageResult[*domain.Event]{}, application.NewValidationError("filter must be upcoming or past")
	}
	items, total, err := s.events.List(ctx, window, s.now().UTC(), page)
	if err != nil {
		return domain.PageResult[*domain.Event]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		return nil, contentError(err, "Event")
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*domain.Event, error) {
	title, ok := nonEmpty(in.Title)
	if !ok {
		return nil, application.NewValidationError("title is required")
	}
	start, ok := nonEmpty(in.StartDateTime)
	if !ok {
		return nil, application.NewValidationError("startDateTime is required")
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        slug.Make(title),
		Description: valueOr(in.Description, ""),
		Location:    valueOr(in.Location, ""),
		Images:      in.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if event.Images == nil {
		event.Images = []string{}
	}
	var err error
	if event.StartDateTime, err = parseTime("startDateTime", start); err != nil {
		return nil, err
	}
	if err := s.applyEnd(event, in.EndDateTime); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, contentError(err, "Event")
	}
	s.logger.Info("event created", "event_id", event.ID, "slug", event.Slug)
	return event, nil
}

// Update applies a partial edit. A new title regenerates the slug.
func (s *EventService) Update(ctx context.Context, id string, in EventInput) (*domain.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if title, ok := nonEmpty(in.Title); ok && title != event.Title {
		event.Title = title
		event.Slug = slug.Make(title)
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if start, ok := nonEmpty(in.StartDateTime); ok {
		if event.StartDateTime, err = parseTime("startDateTime", start); err != nil {
			return nil, err
		}
	}
	if in.EndDateTime != nil {
		if err := s.applyEnd(event, in.EndDateTime); err != nil {
			return nil, err
		}
	}
	if in.Images != nil {
		event.Images = in.Images
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, contentError(err, "Event")
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return application.NewNotFoundError("Event")
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return contentError(err, "Event")
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}

// applyEnd sets or clears the end time. An empty string clears it.
func (s *EventService) applyEnd(event *domain.Event, raw *string) error {
	end, ok := nonEmpty(raw)
	if !ok {
		event.EndDateTime = nil
		return nil
	}
	t, err := parseTime("endDateTime", end)
	if err != nil {
		return err
	}
	if t.Before(event.StartDateTime) {
		return application.NewValidationError("endDateTime must be after startDateTime")
	}
	event.EndDateTime = &t
	return nil
}

func (s *EventService) find(ctx context.Context, id string) (*domain.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Event")
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, contentError(err, "Event")
	}
	return event, nil
}

type StoryService struct {
	stories application.StoryRepository
	logger  *slog.Logger
}

func NewStoryService(stories application.StoryRepository, logger *slog.Logger) *StoryService {
	return &StoryService{stories: stories, logger: logger}
}

func (s *StoryService) List(ctx context.Context, page domain.Page) (domain.PageResult[*domain.Story], error) {
	items, total, err := s.stories.List(ctx, page)
	if err != nil {
		return domain.PageResult[*domain.Story]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

func (s *StoryService) GetBySlug(ctx context.Context, slug string) (*domain.Story, error) {
	story, err := s.stories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, contentError(err, "Story")
	}
	return story, nil
}

func (s *StoryService) Create(ctx context.Context, in StoryInput) (*domain.Story, error) {
	title, ok := nonEmpty(in.Title)
	if !ok {
		return nil, application.NewValidationError("title is required")
	}
	body, ok := nonEmpty(in.Body)
	if !ok {
		return nil, application.NewValidationError("body is required")
	}

	now := time.Now().UTC()
	story := &domain.Story{
		ID:            uuid.New().String(),
		Title:         title,
		Slug:          slug.Make(title),
		Body:          body,
		CoverImage:    trimmedOrNil(in.CoverImage),
		GalleryImages: in.GalleryImages,
		PublishedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if story.GalleryImages == nil {
		story.GalleryImages = []string{}
	}

	if err := s.stories.Create(ctx, story); err != nil {
		return nil, contentError(err, "Story")
	}
	s.logger.Info("story published", "story_id", story.ID, "slug", story.Slug)
	return story, nil
}

func (s *StoryService) Update(ctx context.Context, id string, in StoryInput) (*domain.Story, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Story")
	}
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		return nil, contentError(err, "Story")
	}

	if title, ok := nonEmpty(in.Title); ok && title != story.Title {
		story.Title = title
		story.Slug = slug.Make(title)
	}
	if body, ok := nonEmpty(in.Body); ok {
		story.Body = body
	}
	if in.CoverImage != nil {
		story.CoverImage = trimmedOrNil(in.CoverImage)
	}
	if in.GalleryImages != nil {
		story.GalleryImages = in.GalleryImages
	}
	story.UpdatedAt = time.Now().UTC()

	if err := s.stories.Update(ctx, story); err != nil {
		return nil, contentError(err, "Story")
	}
	return story, nil
}

func (s *StoryService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return application.NewNotFoundError("Story")
	}
	if err := s.stories.Delete(ctx, id); err != nil {
		return contentError(err, "Story")
	}
	s.logger.Info("story deleted", "story_id", id)
	return nil
}

func parseTime(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, application.NewValidationError(field + " must be an RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

// contentError keeps not-found and slug conflicts visible to the caller.
func contentError(err error, resource string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return application.NewNotFoundError(resource)
	case errors.Is(err, domain.ErrConflict):
		return err
	default:
		return application.NewInternalError(err)
	}
}
