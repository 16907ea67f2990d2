package repository

import "github.com/arden-cole/portfoliobackend/models"

// AuthorListResult is one page of authors plus pagination metadata.
type AuthorListResult struct {
	Items []models.Author `json:"items"`
	PageInfo
}

// ProjectListResult is one page of projects, each with its ordered
// slides aggregated, plus pagination metadata.
type ProjectListResult struct {
	Items []models.Project `json:"items"`
	PageInfo
}

type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id int64) (*models.Author, error)
	GetBySlug(slug string) (*models.Author, error)
	Update(author *models.Author) error
	Delete(id int64) (*models.Author, error)
	List(opts ListOptions) (*AuthorListResult, error)
}

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id int64) (*models.Project, error)
	GetBySlug(slug string) (*models.Project, error)
	Update(project *models.Project) error
	Delete(id int64) (*models.Project, error)
	List(opts ListOptions) (*ProjectListResult, error)
	ListByAuthor(authorID int64) ([]models.Project, error)
}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int64) error
	ListAll() ([]models.User, error)
	Count() (int64, error)

	SetAuthorGrant(grant *models.UserAuthor) error
	GetAuthorGrant(userID, authorID int64) (*models.UserAuthor, error)
	DeleteAuthorGrant(userID, authorID int64) error
	ListAuthorGrants(userID int64) ([]models.UserAuthor, error)
}

type SettingRepository interface {
	Get(key string) (*models.Setting, error)
	Set(setting *models.Setting) error
	ListAll() ([]models.Setting, error)
}
