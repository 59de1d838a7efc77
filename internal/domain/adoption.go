package domain

import "time"

// ReviewStatus is shared by adoption and volunteer applications.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

type ApplicantInfo struct {
	Address       string  `json:"address" validate:"required"`
	Experience    string  `json:"experience" validate:"required"`
	HouseholdInfo string  `json:"householdInfo" validate:"required"`
	Notes         *string `json:"notes,omitempty"`
}

type AdoptionApplication struct {
	ID            string        `json:"id"`
	PetID         string        `json:"petId"`
	UserID        string        `json:"userId"`
	ApplicantInfo ApplicantInfo `json:"applicantInfo"`
	Status        ReviewStatus  `json:"status"`
	AdminNote     *string       `json:"adminNote,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Pet  *PetSummary  `json:"pet,omitempty"`
	User *UserSummary `json:"user,omitempty"`
}

// Review records an admin decision. Empty values keep the current ones.
func (a *AdoptionApplication) Review(status ReviewStatus, adminNote *string) error {
	if status != "" {
		if !status.Valid() {
			return NewInvalidStatusError("adoption", string(status))
		}
		a.Status = status
	}
	if adminNote != nil && *adminNote != "" {
		a.AdminNote = adminNote
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "NEW"
	InquiryContacted InquiryStatus = "CONTACTED"
	InquiryClosed    InquiryStatus = "CLOSED"
)

func (s InquiryStatus) Valid() bool {
	return s == InquiryNew || s == InquiryContacted || s == InquiryClosed
}

type AdoptionInquiry struct {
	ID        string        `json:"id"`
	PetID     string        `json:"petId"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Pet *PetSummary `json:"pet,omitempty"`
}
