package domain

import "time"

type VolunteerApplication struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      *string      `json:"address,omitempty"`
	Availability string       `json:"availability"`
	Interests    []string     `json:"interests"`
	Notes        *string      `json:"notes,omitempty"`
	Status       ReviewStatus `json:"status"`
	AdminNote    *string      `json:"adminNote,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (v *VolunteerApplication) Review(status ReviewStatus, adminNote *string) error {
	if status != "" {
		if !status.Valid() {
			return NewInvalidStatusError("volunteer", string(status))
		}
		v.Status = status
	}
	if adminNote != nil && *adminNote != "" {
		v.AdminNote = adminNote
	}
	v.UpdatedAt = time.Now().UTC()
	return nil
}
