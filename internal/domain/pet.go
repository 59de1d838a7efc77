package domain

import (
	"time"
)

type PetStatus string

const (
	PetPendingReview   PetStatus = "PENDING_REVIEW"
	PetAvailable       PetStatus = "AVAILABLE"
	PetPendingAdoption PetStatus = "PENDING_ADOPTION"
	PetAdopted         PetStatus = "ADOPTED"
	PetRejected        PetStatus = "REJECTED"
)

func (s PetStatus) Valid() bool {
	switch s {
	case PetPendingReview, PetAvailable, PetPendingAdoption, PetAdopted, PetRejected:
		return true
	}
	return false
}

type OwnerContact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Pet struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Species           string        `json:"species"`
	Breed             string        `json:"breed"`
	Age               int           `json:"age"`
	Size              string        `json:"size"`
	Gender            string        `json:"gender"`
	Description       string        `json:"description"`
	MedicalNotes      *string       `json:"medicalNotes,omitempty"`
	SpecialNeeds      bool          `json:"specialNeeds"`
	Photos            []string      `json:"photos"`
	Status            PetStatus     `json:"status"`
	SubmittedByUserID *string       `json:"submittedByUserId"`
	OwnerContact      *OwnerContact `json:"ownerContact,omitempty"`
	IsDeleted         bool          `json:"isDeleted"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`

	// Populated by admin listings only.
	SubmittedBy *UserSummary `json:"submittedBy,omitempty"`
}

// PetPatch carries a partial update; nil fields are left untouched.
type PetPatch struct {
	Name         *string
	Species      *string
	Breed        *string
	Age          *int
	Size         *string
	Gender       *string
	Description  *string
	MedicalNotes *string
	SpecialNeeds *bool
	Photos       []string
	OwnerContact *OwnerContact
	Status       *PetStatus
}

func (p *Pet) Apply(patch PetPatch) {
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.Species != nil && *patch.Species != "" {
		p.Species = *patch.Species
	}
	if patch.Breed != nil && *patch.Breed != "" {
		p.Breed = *patch.Breed
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Size != nil && *patch.Size != "" {
		p.Size = *patch.Size
	}
	if patch.Gender != nil && *patch.Gender != "" {
		p.Gender = *patch.Gender
	}
	if patch.Description != nil && *patch.Description != "" {
		p.Description = *patch.Description
	}
	if patch.MedicalNotes != nil {
		p.MedicalNotes = patch.MedicalNotes
	}
	if patch.SpecialNeeds != nil {
		p.SpecialNeeds = *patch.SpecialNeeds
	}
	if patch.Photos != nil {
		p.Photos = patch.Photos
	}
	if patch.OwnerContact != nil {
		p.OwnerContact = patch.OwnerContact
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = time.Now().UTC()
}

// ApplyOwnerEdit applies a submitter's own edit. Only submissions still under review or
// rejected may change, and a rejected one goes back to review.
func (p *Pet) ApplyOwnerEdit(patch PetPatch) error {
	if p.Status != PetPendingReview && p.Status != PetRejected {
		return NewNotEditableError("cannot edit pet in current status")
	}
	patch.Status = nil
	p.Apply(patch)
	if p.Status == PetRejected {
		p.Status = PetPendingReview
	}
	return nil
}

// Withdraw soft-deletes a submission that has not been reviewed yet.
func (p *Pet) Withdraw() error {
	if p.Status != PetPendingReview {
		return NewNotEditableError("cannot delete processed submission")
	}
	p.SoftDelete()
	return nil
}

func (p *Pet) SoftDelete() {
	p.IsDeleted = true
	p.UpdatedAt = time.Now().UTC()
}

// AcceptsApplications reports whether adoption applications may be filed for the pet.
func (p *Pet) AcceptsApplications() bool {
	return !p.IsDeleted && (p.Status == PetAvailable || p.Status == PetPendingAdoption)
}

type PetSummary struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Photos []string  `json:"photos,omitempty"`
	Status PetStatus `json:"status,omitempty"`
}
