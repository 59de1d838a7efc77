package domain

import "time"

type Event struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	Images        []string   `json:"images"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// EventWindow selects events relative to now.
type EventWindow string

const (
	EventsAll      EventWindow = ""
	EventsUpcoming EventWindow = "upcoming"
	EventsPast     EventWindow = "past"
)

type Story struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Body          string    `json:"body"`
	CoverImage    *string   `json:"coverImage,omitempty"`
	GalleryImages []string  `json:"galleryImages"`
	PublishedAt   time.Time `json:"publishedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
