package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentGateway is the port for the external payment gateway.
type PaymentGateway interface {
	InitSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
}

// DonationRepository is the port for donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	FindByTranID(ctx context.Context, tranID string) (*domain.Donation, error)
	SetSessionKey(ctx context.Context, tranID, sessionKey string) error
	// CompleteTransaction applies a terminal status only while the record is PENDING.
	// It reports false when the record was already terminal.
	CompleteTransaction(ctx context.Context, tranID string, status domain.TransactionStatus, valID *string) (bool, error)
	List(ctx context.Context, filter DonationFilter, page domain.Page) ([]*domain.Donation, int, error)
}

type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	Update(ctx context.Context, pet *domain.Pet) error
	List(ctx context.Context, filter PetFilter, page domain.Page) ([]*domain.Pet, int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter, page domain.Page) ([]*domain.User, int, error)
}

type AdoptionRepository interface {
	Create(ctx context.Context, app *domain.AdoptionApplication) error
	FindByID(ctx context.Context, id string) (*domain.AdoptionApplication, error)
	// SaveReview persists the review and, when petStatus is set, the pet status in one transaction.
	SaveReview(ctx context.Context, app *domain.AdoptionApplication, petStatus *domain.PetStatus) error
	List(ctx context.Context, filter ReviewFilter, page domain.Page) ([]*domain.AdoptionApplication, int, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.AdoptionInquiry) error
	FindByID(ctx context.Context, id string) (*domain.AdoptionInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.AdoptionInquiry, error)
	List(ctx context.Context, status domain.InquiryStatus, page domain.Page) ([]*domain.AdoptionInquiry, int, error)
}

type VolunteerRepository interface {
	Create(ctx context.Context, app *domain.VolunteerApplication) error
	FindByID(ctx context.Context, id string) (*domain.VolunteerApplication, error)
	Update(ctx context.Context, app *domain.VolunteerApplication) error
	List(ctx context.Context, status domain.ReviewStatus, page domain.Page) ([]*domain.VolunteerApplication, int, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, window domain.EventWindow, now time.Time, page domain.Page) ([]*domain.Event, int, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	FindByID(ctx context.Context, id string) (*domain.Story, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.Page) ([]*domain.Story, int, error)
}

// AnalyticsReader aggregates dashboard numbers across aggregates.
type AnalyticsReader interface {
	Overview(ctx context.Context, monthStart, now time.Time) (*Overview, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Parse(token string) (*TokenClaims, error)
}

type TokenClaims struct {
	UserID string
	Role   domain.Role
}

type PetSort string

const (
	PetSortCreatedAt PetSort = "createdAt"
	PetSortName      PetSort = "name"
	PetSortAge       PetSort = "age"
)

type PetFilter struct {
	// Name matches the pet name only; Search also covers species and breed.
	Name          string
	Search        string
	Species       string
	Breed         string
	Size          string
	Gender        string
	AgeMin        *int
	AgeMax        *int
	Status        domain.PetStatus
	SubmittedBy   string
	IncludeHidden bool
	SortBy        PetSort
	SortAsc       bool
}

type UserFilter struct {
	Search     string
	Role       domain.Role
	IsDisabled *bool
}

type ReviewFilter struct {
	Status domain.ReviewStatus
	UserID string
}

type DonationFilter struct {
	Status  domain.TransactionStatus
	Purpose domain.DonationPurpose
}

type StatusCount struct {
	Status string `json:"_id"`
	Count  int    `json:"count"`
}

type DonationTotals struct {
	AllTime   decimal.Decimal `json:"allTime"`
	ThisMonth decimal.Decimal `json:"thisMonth"`
}

type PetStats struct {
	Total     int           `json:"total"`
	Breakdown []StatusCount `json:"breakdown"`
}

type EventStats struct {
	Upcoming int `json:"upcoming"`
}

type RecentActivity struct {
	Pets      []*domain.Pet                 `json:"pets"`
	Adoptions []*domain.AdoptionApplication `json:"adoptions"`
	Donations []*domain.Donation            `json:"donations"`
}

// Overview is the admin dashboard snapshot. Status maps are keyed by lower-case status.
type Overview struct {
	Donations      DonationTotals `json:"donations"`
	Pets           PetStats       `json:"pets"`
	Inquiries      map[string]int `json:"inquiries"`
	Adoptions      map[string]int `json:"adoptions"`
	Volunteers     map[string]int `json:"volunteers"`
	Events         EventStats     `json:"events"`
	RecentActivity RecentActivity `json:"recentActivity"`
}
