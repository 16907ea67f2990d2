package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arden-cole/portfoliobackend/models"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *GormUserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// SetAuthorGrant creates or replaces the per-author grant for a user
func (r *GormUserRepository) SetAuthorGrant(grant *models.UserAuthor) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
		UpdateAll: true,
	}).Create(grant).Error
}

func (r *GormUserRepository) GetAuthorGrant(userID, authorID int64) (*models.UserAuthor, error) {
	var grant models.UserAuthor
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *GormUserRepository) DeleteAuthorGrant(userID, authorID int64) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.UserAuthor{}).Error
}

func (r *GormUserRepository) ListAuthorGrants(userID int64) ([]models.UserAuthor, error) {
	var grants []models.UserAuthor
	err := r.db.Where("user_id = ?", userID).Find(&grants).Error
	return grants, err
}
