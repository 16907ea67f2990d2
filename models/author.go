package models

import "time"

// LinkTag is a labelled link, used for author socials and project tags.
type LinkTag struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Author represents a portfolio owner. The slug is the public URL
// identifier and must be unique.
type Author struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Description string    `json:"description,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null" validate:"required,slug"`
	Socials     []LinkTag `json:"socials" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []Project `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
