// Package mocks holds testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

func ptrOrNil[T any](v any) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

func sliceOrNil[T any](v any) []T {
	if v == nil {
		return nil
	}
	return v.([]T)
}

type DonationRepository struct{ mock.Mock }

func (m *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DonationRepository) FindByTranID(ctx context.Context, tranID string) (*domain.Donation, error) {
	args := m.Called(ctx, tranID)
	return ptrOrNil[domain.Donation](args.Get(0)), args.Error(1)
}

func (m *DonationRepository) SetSessionKey(ctx context.Context, tranID, sessionKey string) error {
	return m.Called(ctx, tranID, sessionKey).Error(0)
}

func (m *DonationRepository) CompleteTransaction(ctx context.Context, tranID string, status domain.TransactionStatus, valID *string) (bool, error) {
	args := m.Called(ctx, tranID, status, valID)
	return args.Bool(0), args.Error(1)
}

func (m *DonationRepository) List(ctx context.Context, f application.DonationFilter, page domain.Page) ([]*domain.Donation, int, error) {
	args := m.Called(ctx, f, page)
	return sliceOrNil[*domain.Donation](args.Get(0)), args.Int(1), args.Error(2)
}

type PetRepository struct{ mock.Mock }

func (m *PetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	return m.Called(ctx, pet).Error(0)
}

func (m *PetRepository) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.Pet](args.Get(0)), args.Error(1)
}

func (m *PetRepository) Update(ctx context.Context, pet *domain.Pet) error {
	return m.Called(ctx, pet).Error(0)
}

func (m *PetRepository) List(ctx context.Context, f application.PetFilter, page domain.Page) ([]*domain.Pet, int, error) {
	args := m.Called(ctx, f, page)
	return sliceOrNil[*domain.Pet](args.Get(0)), args.Int(1), args.Error(2)
}

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.User](args.Get(0)), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return ptrOrNil[domain.User](args.Get(0)), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) List(ctx context.Context, f application.UserFilter, page domain.Page) ([]*domain.User, int, error) {
	args := m.Called(ctx, f, page)
	return sliceOrNil[*domain.User](args.Get(0)), args.Int(1), args.Error(2)
}

type AdoptionRepository struct{ mock.Mock }

func (m *AdoptionRepository) Create(ctx context.Context, a *domain.AdoptionApplication) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AdoptionRepository) FindByID(ctx context.Context, id string) (*domain.AdoptionApplication, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.AdoptionApplication](args.Get(0)), args.Error(1)
}

func (m *AdoptionRepository) SaveReview(ctx context.Context, a *domain.AdoptionApplication, petStatus *domain.PetStatus) error {
	return m.Called(ctx, a, petStatus).Error(0)
}

func (m *AdoptionRepository) List(ctx context.Context, f application.ReviewFilter, page domain.Page) ([]*domain.AdoptionApplication, int, error) {
	args := m.Called(ctx, f, page)
	return sliceOrNil[*domain.AdoptionApplication](args.Get(0)), args.Int(1), args.Error(2)
}

type InquiryRepository struct{ mock.Mock }

func (m *InquiryRepository) Create(ctx context.Context, i *domain.AdoptionInquiry) error {
	return m.Called(ctx, i).Error(0)
}

func (m *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.AdoptionInquiry, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.AdoptionInquiry](args.Get(0)), args.Error(1)
}

func (m *InquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.AdoptionInquiry, error) {
	args := m.Called(ctx, id, status)
	return ptrOrNil[domain.AdoptionInquiry](args.Get(0)), args.Error(1)
}

func (m *InquiryRepository) List(ctx context.Context, status domain.InquiryStatus, page domain.Page) ([]*domain.AdoptionInquiry, int, error) {
	args := m.Called(ctx, status, page)
	return sliceOrNil[*domain.AdoptionInquiry](args.Get(0)), args.Int(1), args.Error(2)
}

type VolunteerRepository struct{ mock.Mock }

func (m *VolunteerRepository) Create(ctx context.Context, v *domain.VolunteerApplication) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VolunteerRepository) FindByID(ctx context.Context, id string) (*domain.VolunteerApplication, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.VolunteerApplication](args.Get(0)), args.Error(1)
}

func (m *VolunteerRepository) Update(ctx context.Context, v *domain.VolunteerApplication) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VolunteerRepository) List(ctx context.Context, status domain.ReviewStatus, page domain.Page) ([]*domain.VolunteerApplication, int, error) {
	args := m.Called(ctx, status, page)
	return sliceOrNil[*domain.VolunteerApplication](args.Get(0)), args.Int(1), args.Error(2)
}

type EventRepository struct{ mock.Mock }

func (m *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.Event](args.Get(0)), args.Error(1)
}

func (m *EventRepository) FindBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	args := m.Called(ctx, slug)
	return ptrOrNil[domain.Event](args.Get(0)), args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *EventRepository) List(ctx context.Context, window domain.EventWindow, now time.Time, page domain.Page) ([]*domain.Event, int, error) {
	args := m.Called(ctx, window, now, page)
	return sliceOrNil[*domain.Event](args.Get(0)), args.Int(1), args.Error(2)
}

type StoryRepository struct{ mock.Mock }

func (m *StoryRepository) Create(ctx context.Context, s *domain.Story) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StoryRepository) FindByID(ctx context.Context, id string) (*domain.Story, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[domain.Story](args.Get(0)), args.Error(1)
}

func (m *StoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Story, error) {
	args := m.Called(ctx, slug)
	return ptrOrNil[domain.Story](args.Get(0)), args.Error(1)
}

func (m *StoryRepository) Update(ctx context.Context, s *domain.Story) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *StoryRepository) List(ctx context.Context, page domain.Page) ([]*domain.Story, int, error) {
	args := m.Called(ctx, page)
	return sliceOrNil[*domain.Story](args.Get(0)), args.Int(1), args.Error(2)
}

type AnalyticsReader struct{ mock.Mock }

func (m *AnalyticsReader) Overview(ctx context.Context, monthStart, now time.Time) (*application.Overview, error) {
	args := m.Called(ctx, monthStart, now)
	return ptrOrNil[application.Overview](args.Get(0)), args.Error(1)
}
