package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arden-cole/portfoliobackend/models"
)

type GormSettingRepository struct {
	db *gorm.DB
}

func NewGormSettingRepository(db *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: db}
}

func (r *GormSettingRepository) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Set upserts by key
func (r *GormSettingRepository) Set(setting *models.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func (r *GormSettingRepository) ListAll() ([]models.Setting, error) {
	var settings []models.Setting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}
