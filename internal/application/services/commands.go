package services

import (
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/shopspring/decimal"
)

type InitDonationCommand struct {
	Amount     decimal.Decimal
	Purpose    string
	PetID      *string
	DonorName  *string
	DonorEmail *string
	DonorPhone *string
	UserID     *string
}

type InitDonationResult struct {
	TranID string
	URL    string
}

// IPNCommand is the gateway's server-to-server notification.
type IPNCommand struct {
	TranID string
	Status string
	ValID  *string
}

type RegisterCommand struct {
	Name     string  `validate:"required"`
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,min=6"`
	Phone    *string
}

type LoginCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Token string      `json:"token"`
}

type UpdateProfileCommand struct {
	Name     *string
	Phone    *string
	Password *string
}

type AdminUpdateUserCommand struct {
	Name       *string
	Email      *string
	Role       *domain.Role
	IsDisabled *bool
}

type SubmitPetCommand struct {
	Name         string `validate:"required"`
	Species      string `validate:"required"`
	Breed        string
	Age          int `validate:"gte=0"`
	Size         string
	Gender       string
	Description  string
	MedicalNotes *string
	SpecialNeeds bool
	Photos       []string
	OwnerContact *domain.OwnerContact
}

type ApplyAdoptionCommand struct {
	PetID         string `validate:"required"`
	ApplicantInfo domain.ApplicantInfo
}

type ReviewCommand struct {
	Status    string
	AdminNote *string
}

type CreateInquiryCommand struct {
	PetID   string `validate:"required"`
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required"`
	Message string `validate:"required"`
}

type ApplyVolunteerCommand struct {
	Name         string `validate:"required"`
	Email        string `validate:"required,email"`
	Phone        string `validate:"required"`
	Address      *string
	Availability string `validate:"required"`
	Interests    []string
	Notes        *string
}

type EventInput struct {
	Title         *string
	Description   *string
	Location      *string
	StartDateTime *string
	EndDateTime   *string
	Images        []string
}

type StoryInput struct {
	Title         *string
	Body          *string
	CoverImage    *string
	GalleryImages []string
}
