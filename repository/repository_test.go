package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/database"
	"github.com/arden-cole/portfoliobackend/models"
)

// setupTestDB creates a migrated sqlite database in a per-test temp dir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func makeAuthor(t *testing.T, repo AuthorRepository, name, slug string) *models.Author {
	t.Helper()
	author := &models.Author{Name: name, Slug: slug}
	require.NoError(t, repo.Create(author))
	return author
}

func imageSlide(src string) models.MediaSlide {
	return models.MediaSlide{Type: models.SlideTypeImage, Src: src, Visible: true}
}
