package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/application/mocks"
	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventService_Create(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := services.NewEventService(repo, testhelpers.DiscardLogger())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.Create(context.Background(), services.EventInput{
		Title:         ptr("Adoption Day: Spring Edition!"),
		StartDateTime: ptr("2026-04-01T10:00:00+06:00"),
		EndDateTime:   ptr("2026-04-01T16:00:00+06:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "adoption-day-spring-edition", event.Slug)
	assert.Equal(t, time.Date(2026, 4, 1, 4, 0, 0, 0, time.UTC), event.StartDateTime)
	require.NotNil(t, event.EndDateTime)
	assert.NotNil(t, event.Images)
}

func TestEventService_Create_Validation(t *testing.T) {
	svc := services.NewEventService(new(mocks.EventRepository), testhelpers.DiscardLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, services.EventInput{StartDateTime: ptr("2026-04-01T10:00:00Z")})
	assert.EqualError(t, err, "title is required")

	_, err = svc.Create(ctx, services.EventInput{Title: ptr("Fair"), StartDateTime: ptr("tomorrow")})
	assert.Equal(t, http.StatusBadRequest, application.ToHTTPStatus(err))

	_, err = svc.Create(ctx, services.EventInput{
		Title:         ptr("Fair"),
		StartDateTime: ptr("2026-04-02T10:00:00Z"),
		EndDateTime:   ptr("2026-04-01T10:00:00Z"),
	})
	assert.EqualError(t, err, "endDateTime must be after startDateTime")
}

func TestEventService_Update_ReslugsOnTitleChange(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := services.NewEventService(repo, testhelpers.DiscardLogger())
	event := &domain.Event{ID: uuid.NewString(), Title: "Old", Slug: "old", StartDateTime: time.Now().UTC()}
	repo.On("FindByID", mock.Anything, event.ID).Return(event, nil)
	repo.On("Update", mock.Anything, event).Return(nil)

	updated, err := svc.Update(context.Background(), event.ID, services.EventInput{Title: ptr("Winter Fair")})

	require.NoError(t, err)
	assert.Equal(t, "winter-fair", updated.Slug)
}

func TestEventService_SlugConflict(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := services.NewEventService(repo, testhelpers.DiscardLogger())
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.NewConflictError("An event with this title already exists"))

	_, err := svc.Create(context.Background(), services.EventInput{Title: ptr("Fair"), StartDateTime: ptr("2026-04-02T10:00:00Z")})

	assert.Equal(t, http.StatusConflict, application.ToHTTPStatus(err))
}

func TestEventService_List_RejectsUnknownFilter(t *testing.T) {
	svc := services.NewEventService(new(mocks.EventRepository), testhelpers.DiscardLogger())

	_, err := svc.List(context.Background(), domain.EventWindow("soon"), domain.NewPage(1, 10, 10))

	assert.Equal(t, http.StatusBadRequest, application.ToHTTPStatus(err))
}

func TestStoryService_CreateAndDelete(t *testing.T) {
	repo := new(mocks.StoryRepository)
	svc := services.NewStoryService(repo, testhelpers.DiscardLogger())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	story, err := svc.Create(context.Background(), services.StoryInput{Title: ptr("Max Finds a Home"), Body: ptr("It took a while.")})
	require.NoError(t, err)
	assert.Equal(t, "max-finds-a-home", story.Slug)
	assert.False(t, story.PublishedAt.IsZero())

	missing := uuid.NewString()
	repo.On("Delete", mock.Anything, missing).Return(domain.NewNotFoundError("story"))
	err = svc.Delete(context.Background(), missing)
	assert.EqualError(t, err, "Story not found")
}

func TestAnalyticsService_UsesUTCMonthStart(t *testing.T) {
	reader := new(mocks.AnalyticsReader)
	svc := services.NewAnalyticsService(reader, testhelpers.DiscardLogger())

	reader.On("Overview", mock.Anything, mock.MatchedBy(func(start time.Time) bool {
		now := time.Now().UTC()
		return start.Day() == 1 && start.Hour() == 0 && start.Month() == now.Month() && start.Location() == time.UTC
	}), mock.Anything).Return(&application.Overview{}, nil).Once()

	_, err := svc.Overview(context.Background())

	require.NoError(t, err)
	reader.AssertExpectations(t)
}
