package repository

import (
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/database"
	"github.com/arden-cole/portfoliobackend/models"
)

var projectSearchColumns = []string{"title", "subtitle", "description", "slug"}

var projectSortColumns = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
}

type GormProjectRepository struct {
	db *gorm.DB
}

func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create persists the project and its ordered slides in one transaction
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		slides := project.Slides
		project.Slides = nil
		if err := tx.Omit("Slides").Create(project).Error; err != nil {
			return err
		}
		for i := range slides {
			slides[i].ID = 0
			slides[i].ProjectID = project.ID
			slides[i].Position = i
		}
		if len(slides) > 0 {
			if err := tx.Create(&slides).Error; err != nil {
				return err
			}
		}
		project.Slides = slides
		return nil
	})
}

func (r *GormProjectRepository) GetByID(id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Slides", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	if project.Slides == nil {
		project.Slides = []models.MediaSlide{}
	}
	return &project, nil
}

func (r *GormProjectRepository) GetBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Slides", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	if project.Slides == nil {
		project.Slides = []models.MediaSlide{}
	}
	return &project, nil
}

// Update rewrites the project row and replaces the entire slide set:
// existing slides are deleted and the new ordered set reinserted. Slide
// identifiers therefore churn on every edit; nothing relies on them
// surviving an update.
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
			"author_id":      project.AuthorID,
			"slug":           project.Slug,
			"title":          project.Title,
			"subtitle":       project.Subtitle,
			"description":    project.Description,
			"status":         project.Status,
			"tags":           project.Tags,
			"date":           project.Date,
			"project_url":    project.ProjectURL,
			"repo_url":       project.RepoURL,
			"cover_media_id": project.CoverMediaID,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.MediaSlide{}).Error; err != nil {
			return err
		}
		slides := project.Slides
		for i := range slides {
			slides[i].ID = 0
			slides[i].ProjectID = project.ID
			slides[i].Position = i
		}
		if len(slides) > 0 {
			if err := tx.Create(&slides).Error; err != nil {
				return err
			}
		}
		project.Slides = slides
		return nil
	})
}

func (r *GormProjectRepository) Delete(id int64) (*models.Project, error) {
	project, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.MediaSlide{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// List returns one page of projects with their ordered slides attached.
// The count query reuses the identical predicate as the item query.
func (r *GormProjectRepository) List(opts ListOptions) (*ProjectListResult, error) {
	opts = opts.Normalized()

	term, _ := database.NormalizeSearchTerm(opts.Query)
	preds := []sq.Sqlizer{
		database.SubstringMatchAny(term, projectSearchColumns),
		database.RangePredicate("created_at", opts.CreatedFrom, opts.CreatedTo),
	}
	if opts.AuthorID != nil {
		preds = append(preds, sq.Eq{"author_id": *opts.AuthorID})
	}
	pred := database.ConjunctionOfAll(preds...)

	q := r.db.Model(&models.Project{})
	if pred != nil {
		sqlStr, args, err := pred.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build project list predicate: %w", err)
		}
		q = q.Where(sqlStr, args...)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	order, applied := database.ResolveSort(opts.Sort, projectSortColumns, "id", "desc")

	items := []models.Project{}
	err := q.Order(order).
		Limit(opts.PageSize).
		Offset((opts.Page - 1) * opts.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if err := r.attachSlides(items); err != nil {
		return nil, err
	}

	return &ProjectListResult{
		Items:    items,
		PageInfo: ComputePageInfo(total, opts.Page, opts.PageSize, applied),
	}, nil
}

// ListByAuthor returns all of one author's projects with slides, most
// recent first, for the public portfolio page.
func (r *GormProjectRepository) ListByAuthor(authorID int64) ([]models.Project, error) {
	items := []models.Project{}
	err := r.db.Where("author_id = ? AND status = ?", authorID, models.ProjectStatusActive).
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for author %d: %w", authorID, err)
	}
	if err := r.attachSlides(items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachSlides loads the slides for a page of projects in one query and
// distributes them in ascending position order. A project with no
// slides gets an empty slice, never nil.
func (r *GormProjectRepository) attachSlides(items []models.Project) error {
	for i := range items {
		items[i].Slides = []models.MediaSlide{}
	}
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
	}

	var slides []models.MediaSlide
	if err := r.db.Where("project_id IN ?", ids).Find(&slides).Error; err != nil {
		return fmt.Errorf("failed to load slides: %w", err)
	}
	sort.SliceStable(slides, func(a, b int) bool {
		if slides[a].ProjectID != slides[b].ProjectID {
			return slides[a].ProjectID < slides[b].ProjectID
		}
		return slides[a].Position < slides[b].Position
	})
	for _, s := range slides {
		if i, ok := index[s.ProjectID]; ok {
			items[i].Slides = append(items[i].Slides, s)
		}
	}
	return nil
}
