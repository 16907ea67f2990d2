package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideVariant(t *testing.T) {
	t.Run("image", func(t *testing.T) {
		s := MediaSlide{
			Type: SlideTypeImage,
			Src:  "/media/slides/a.jpg",
			Alt:  "Aurora over the bay",
		}
		v, ok := s.Variant().(ImageSlide)
		require.True(t, ok)
		assert.Equal(t, "/media/slides/a.jpg", v.Src)
		assert.Equal(t, "Aurora over the bay", v.Alt)
	})

	t.Run("video", func(t *testing.T) {
		s := MediaSlide{
			Type:         SlideTypeVideo,
			Src:          "https://www.youtube.com/watch?v=abc",
			VideoKind:    VideoKindYouTube,
			StartSeconds: 30,
		}
		v, ok := s.Variant().(VideoSlide)
		require.True(t, ok)
		assert.Equal(t, VideoKindYouTube, v.Kind)
		assert.Equal(t, 30, v.StartSeconds)
	})

	t.Run("unknown type has no variant", func(t *testing.T) {
		s := MediaSlide{Type: "carousel", Src: "x"}
		assert.Nil(t, s.Variant())
	})
}

func TestProjectSlugOrID(t *testing.T) {
	withSlug := Project{ID: 7, Slug: "aurora-landing"}
	assert.Equal(t, "aurora-landing", withSlug.SlugOrID())

	slugless := Project{ID: 7}
	assert.Equal(t, "7", slugless.SlugOrID())
}

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse battery"))
	assert.NotEqual(t, "correct horse battery", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleEditor))
	assert.True(t, IsValidRole(RoleViewer))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}
