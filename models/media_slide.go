package models

import "time"

// MediaSlide type discriminator values
const (
	SlideTypeImage = "image"
	SlideTypeVideo = "video"
)

// Video kind values
const (
	VideoKindYouTube = "youtube"
	VideoKindVimeo   = "vimeo"
	VideoKindMP4     = "mp4"
)

// MediaSlide is one item of a project gallery. It is a tagged union over
// Type; consumers should switch on Variant() so adding a slide type is a
// compile-visible change. Slides belong to exactly one project and are
// deleted when the project is deleted or its slide set is replaced.
type MediaSlide struct {
	ID        int64  `json:"id,omitempty" gorm:"primaryKey"`
	ProjectID int64  `json:"project_id,omitempty" gorm:"index:idx_slides_project_position,priority:1"`
	Position  int    `json:"position" gorm:"index:idx_slides_project_position,priority:2;not null;default:0"`
	Visible   bool   `json:"visible" gorm:"not null;default:true"`
	Type      string `json:"type" gorm:"not null" validate:"oneof=image video"`

	Src         string `json:"src" validate:"required"`
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`

	// image variant
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// video variant
	VideoKind    string `json:"video_kind,omitempty" validate:"omitempty,oneof=youtube vimeo mp4"`
	Poster       string `json:"poster,omitempty"`
	Autoplay     bool   `json:"autoplay,omitempty"`
	Loop         bool   `json:"loop,omitempty"`
	Controls     bool   `json:"controls,omitempty"`
	StartSeconds int    `json:"start_seconds,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ImageSlide is the typed image variant of a MediaSlide.
type ImageSlide struct {
	Src         string
	Caption     string
	Description string
	Alt         string
	Width       int
	Height      int
}

// VideoSlide is the typed video variant of a MediaSlide.
type VideoSlide struct {
	Src          string
	Caption      string
	Description  string
	Kind         string
	Poster       string
	Autoplay     bool
	Loop         bool
	Controls     bool
	StartSeconds int
}

// SlideVariant is implemented by the typed slide variants.
type SlideVariant interface {
	slideVariant()
}

func (ImageSlide) slideVariant() {}
func (VideoSlide) slideVariant() {}

// Variant returns the typed variant for this slide. Unknown types return
// nil, which consumption sites must treat as invalid data.
func (s *MediaSlide) Variant() SlideVariant {
	switch s.Type {
	case SlideTypeImage:
		return ImageSlide{
			Src:         s.Src,
			Caption:     s.Caption,
			Description: s.Description,
			Alt:         s.Alt,
			Width:       s.Width,
			Height:      s.Height,
		}
	case SlideTypeVideo:
		return VideoSlide{
			Src:          s.Src,
			Caption:      s.Caption,
			Description:  s.Description,
			Kind:         s.VideoKind,
			Poster:       s.Poster,
			Autoplay:     s.Autoplay,
			Loop:         s.Loop,
			Controls:     s.Controls,
			StartSeconds: s.StartSeconds,
		}
	default:
		return nil
	}
}
