package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/models"
)

func TestAuthorCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)

	author := &models.Author{
		Name:        "Ivan Petrov",
		Slug:        "ivan-petrov",
		Description: "Photographer based in Tallinn",
		Socials: []models.LinkTag{
			{Label: "Instagram", URL: "https://instagram.com/ivanpetrov"},
		},
	}
	require.NoError(t, authors.Create(author))
	require.NotZero(t, author.ID)

	bySlug, err := authors.GetBySlug("ivan-petrov")
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", bySlug.Name)
	require.Len(t, bySlug.Socials, 1)
	assert.Equal(t, "Instagram", bySlug.Socials[0].Label)

	byID, err := authors.GetByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, bySlug.Slug, byID.Slug)
}

func TestAuthorGetMissing(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)

	_, err := authors.GetBySlug("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = authors.GetByID(404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorSlugUnique(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)

	makeAuthor(t, authors, "Ivan Petrov", "ivan-petrov")
	err := authors.Create(&models.Author{Name: "Imposter", Slug: "ivan-petrov"})
	assert.Error(t, err)
}

func TestAuthorUpdate(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)
	author := makeAuthor(t, authors, "Ivan Petrov", "ivan-petrov")

	author.Name = "Ivan K. Petrov"
	author.Slug = "ivan-k-petrov"
	require.NoError(t, authors.Update(author))

	got, err := authors.GetByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan K. Petrov", got.Name)
	assert.Equal(t, "ivan-k-petrov", got.Slug)

	err = authors.Update(&models.Author{ID: 999, Name: "Ghost", Slug: "ghost"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)
	projects := NewGormProjectRepository(db)
	author := makeAuthor(t, authors, "Ivan Petrov", "ivan-petrov")

	project := &models.Project{
		AuthorID: author.ID,
		Slug:     "aurora-landing",
		Title:    "Aurora Landing",
		Status:   models.ProjectStatusActive,
		Slides:   []models.MediaSlide{imageSlide("slides/a.jpg"), imageSlide("slides/b.jpg")},
	}
	require.NoError(t, projects.Create(project))

	deleted, err := authors.Delete(author.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan-petrov", deleted.Slug)

	var projectCount, slideCount int64
	require.NoError(t, db.Model(&models.Project{}).Where("author_id = ?", author.ID).Count(&projectCount).Error)
	require.NoError(t, db.Model(&models.MediaSlide{}).Where("project_id = ?", project.ID).Count(&slideCount).Error)
	assert.EqualValues(t, 0, projectCount)
	assert.EqualValues(t, 0, slideCount)
}

func TestAuthorList(t *testing.T) {
	db := setupTestDB(t)
	authors := NewGormAuthorRepository(db)

	for i := 0; i < 5; i++ {
		makeAuthor(t, authors, fmt.Sprintf("Author %d", i), fmt.Sprintf("author-%d", i))
	}
	makeAuthor(t, authors, "Mara Lind", "mara-lind")

	t.Run("pagination never exceeds the page size", func(t *testing.T) {
		result, err := authors.List(ListOptions{Page: 1, PageSize: 4})
		require.NoError(t, err)
		assert.EqualValues(t, 6, result.Total)
		assert.Equal(t, 2, result.Pages)
		assert.LessOrEqual(t, len(result.Items), 4)
	})

	t.Run("search narrows the count and the items together", func(t *testing.T) {
		result, err := authors.List(ListOptions{Query: "mara"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "mara-lind", result.Items[0].Slug)
	})

	t.Run("sort ascending by id", func(t *testing.T) {
		result, err := authors.List(ListOptions{Sort: "id.asc", PageSize: 10})
		require.NoError(t, err)
		require.NotEmpty(t, result.Items)
		for i := 1; i < len(result.Items); i++ {
			assert.Less(t, result.Items[i-1].ID, result.Items[i].ID)
		}
	})

	t.Run("page info echoes the sort the query used", func(t *testing.T) {
		result, err := authors.List(ListOptions{Sort: "id.asc", PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, "id.asc", result.Sort)

		result, err = authors.List(ListOptions{Sort: "title.banana"})
		require.NoError(t, err)
		assert.Equal(t, "id.desc", result.Sort, "unapplied specifiers are not echoed")

		result, err = authors.List(ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, "id.desc", result.Sort)
	})

	t.Run("created range excludes future windows", func(t *testing.T) {
		future := time.Now().Add(24 * time.Hour)
		result, err := authors.List(ListOptions{CreatedFrom: &future})
		require.NoError(t, err)
		assert.EqualValues(t, 0, result.Total)
		assert.Empty(t, result.Items)
		assert.Equal(t, 1, result.Pages)
	})
}

func TestCachedAuthorRepository(t *testing.T) {
	db := setupTestDB(t)
	cached := NewCachedAuthorRepository(NewGormAuthorRepository(db), time.Minute)
	author := makeAuthor(t, cached, "Ivan Petrov", "ivan-petrov")

	first, err := cached.GetBySlug("ivan-petrov")
	require.NoError(t, err)

	// bypass the decorator, then confirm the cache still answers
	require.NoError(t, db.Model(&models.Author{}).Where("id = ?", author.ID).Update("name", "Changed Underneath").Error)
	again, err := cached.GetBySlug("ivan-petrov")
	require.NoError(t, err)
	assert.Equal(t, first.Name, again.Name)

	// a write through the decorator invalidates the entry
	author.Name = "Ivan K. Petrov"
	require.NoError(t, cached.Update(author))
	fresh, err := cached.GetBySlug("ivan-petrov")
	require.NoError(t, err)
	assert.Equal(t, "Ivan K. Petrov", fresh.Name)

	// deleting drops the slug from the cache as well
	_, err = cached.Delete(author.ID)
	require.NoError(t, err)
	_, err = cached.GetBySlug("ivan-petrov")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
