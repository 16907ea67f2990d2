package models

import "time"

// UserAuthor grants a user fine-grained rights over one author's
// portfolio. Admins bypass these grants entirely.
type UserAuthor struct {
	UserID   int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	AuthorID int64 `json:"author_id" gorm:"primaryKey;autoIncrement:false"`

	CanCreate  bool `json:"can_create" gorm:"not null;default:true"`
	CanUpdate  bool `json:"can_update" gorm:"not null;default:true"`
	CanDelete  bool `json:"can_delete" gorm:"not null;default:false"`
	CanPublish bool `json:"can_publish" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
}
