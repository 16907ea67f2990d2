package models

import (
	"strconv"
	"time"
)

// Project status values
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"
)

// Project is a media gallery owned by an author. Slides are ordered by
// their position index; validation requires at least one slide.
type Project struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	AuthorID    int64      `json:"author_id" gorm:"index;not null" validate:"required,gt=0"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null" validate:"required,slug"`
	Title       string     `json:"title" gorm:"not null" validate:"required"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" gorm:"index;not null;default:active" validate:"oneof=active inactive"`
	Tags        []LinkTag  `json:"tags" gorm:"serializer:json"`
	Date        *time.Time `json:"date,omitempty"`

	ProjectURL string `json:"project_url,omitempty"`
	RepoURL    string `json:"repo_url,omitempty"`

	// CoverMediaID points at the slide shown in list/grid views; nil
	// falls back to the first slide
	CoverMediaID *int64 `json:"cover_media_id,omitempty"`

	Slides []MediaSlide `json:"slides" gorm:"constraint:OnDelete:CASCADE" validate:"min=1,dive"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlugOrID returns the public URL identifier for the project
func (p *Project) SlugOrID() string {
	if p.Slug != "" {
		return p.Slug
	}
	return strconv.FormatInt(p.ID, 10)
}
