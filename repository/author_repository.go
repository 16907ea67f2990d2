package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/database"
	"github.com/arden-cole/portfoliobackend/models"
)

// authorSearchColumns are the text columns matched by the free-text
// query filter.
var authorSearchColumns = []string{"name", "description", "slug"}

var authorSortColumns = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) AuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

func (r *GormAuthorRepository) GetByID(id int64) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) GetBySlug(slug string) (*models.Author, error) {
	var author models.Author
	if err := r.db.Where("slug = ?", slug).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) Update(author *models.Author) error {
	result := r.db.Model(&models.Author{}).Where("id = ?", author.ID).Updates(map[string]interface{}{
		"name":        author.Name,
		"description": author.Description,
		"avatar_url":  author.AvatarURL,
		"slug":        author.Slug,
		"socials":     author.Socials,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the author and, through the foreign-key cascade, all of
// their projects and slides. The removed record is returned.
func (r *GormAuthorRepository) Delete(id int64) (*models.Author, error) {
	author, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []int64
		if err := tx.Model(&models.Project{}).Where("author_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		if len(projectIDs) > 0 {
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.MediaSlide{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.UserAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Author{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

// List returns one page of authors plus a total computed with the same
// filter predicate, so the count never drifts from the items.
func (r *GormAuthorRepository) List(opts ListOptions) (*AuthorListResult, error) {
	opts = opts.Normalized()

	term, _ := database.NormalizeSearchTerm(opts.Query)
	pred := database.ConjunctionOfAll(
		database.SubstringMatchAny(term, authorSearchColumns),
		database.RangePredicate("created_at", opts.CreatedFrom, opts.CreatedTo),
	)

	q := r.db.Model(&models.Author{})
	if pred != nil {
		sqlStr, args, err := pred.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build author list predicate: %w", err)
		}
		q = q.Where(sqlStr, args...)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count authors: %w", err)
	}

	order, applied := database.ResolveSort(opts.Sort, authorSortColumns, "id", "desc")

	items := []models.Author{}
	err := q.Order(order).
		Limit(opts.PageSize).
		Offset((opts.Page - 1) * opts.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	return &AuthorListResult{
		Items:    items,
		PageInfo: ComputePageInfo(total, opts.Page, opts.PageSize, applied),
	}, nil
}
