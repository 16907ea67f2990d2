package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsNormalized(t *testing.T) {
	tests := []struct {
		name         string
		in           ListOptions
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", ListOptions{}, DefaultPage, DefaultPageSize},
		{"negative page clamps to 1", ListOptions{Page: -3, PageSize: 10}, 1, 10},
		{"oversized pageSize clamps to max", ListOptions{Page: 2, PageSize: 5000}, 2, MaxPageSize},
		{"in-range values pass through", ListOptions{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestComputePageInfo(t *testing.T) {
	t.Run("empty result still has one page", func(t *testing.T) {
		info := ComputePageInfo(0, 1, 20, "id.desc")
		assert.Equal(t, 1, info.Pages)
		assert.False(t, info.HasPrev)
		assert.False(t, info.HasNext)
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		info := ComputePageInfo(40, 1, 20, "id.desc")
		assert.Equal(t, 2, info.Pages)
		assert.False(t, info.HasPrev)
		assert.True(t, info.HasNext)
	})

	t.Run("partial last page rounds up", func(t *testing.T) {
		info := ComputePageInfo(41, 3, 20, "id.desc")
		assert.Equal(t, 3, info.Pages)
		assert.True(t, info.HasPrev)
		assert.False(t, info.HasNext)
	})

	t.Run("middle page has both neighbors", func(t *testing.T) {
		info := ComputePageInfo(100, 2, 20, "createdAt.asc")
		assert.Equal(t, 5, info.Pages)
		assert.True(t, info.HasPrev)
		assert.True(t, info.HasNext)
		assert.Equal(t, "createdAt.asc", info.Sort)
	})

	t.Run("page beyond the last has no next", func(t *testing.T) {
		info := ComputePageInfo(10, 9, 20, "id.desc")
		assert.Equal(t, 1, info.Pages)
		assert.True(t, info.HasPrev)
		assert.False(t, info.HasNext)
	})
}
