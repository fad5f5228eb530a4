package repositories

import (
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

var ErrTechnologyNotFound = errors.New("technology not found")

type TechnologyRepository interface {
	Create(db *gorm.DB, tech *models.Technology) error
	FindByID(db *gorm.DB, id string) (*models.Technology, error)
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Technology, error)
	FindByIDsForUser(db *gorm.DB, ids []string, userID string) ([]models.Technology, error)
	FindPage(db *gorm.DB, userID string, offset, limit int, orderBy string) ([]models.Technology, error)
	Count(db *gorm.DB, userID string) (int64, error)
	Save(db *gorm.DB, tech *models.Technology) error
	Delete(db *gorm.DB, id string) error
}

type technologyRepository struct{}

func NewTechnologyRepository() TechnologyRepository {
	return &technologyRepository{}
}

func (r *technologyRepository) Create(db *gorm.DB, tech *models.Technology) error {
	return db.Create(tech).Error
}

func (r *technologyRepository) FindByID(db *gorm.DB, id string) (*models.Technology, error) {
	var tech models.Technology
	err := db.First(&tech, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnologyNotFound
		}
		return nil, err
	}
	return &tech, nil
}

func (r *technologyRepository) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Technology, error) {
	var tech models.Technology
	err := db.First(&tech, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnologyNotFound
		}
		return nil, err
	}
	return &tech, nil
}

func (r *technologyRepository) FindByIDsForUser(db *gorm.DB, ids []string, userID string) ([]models.Technology, error) {
	var techs []models.Technology
	if len(ids) == 0 {
		return techs, nil
	}
	err := db.Where("id IN ? AND user_id = ?", ids, userID).Find(&techs).Error
	return techs, err
}

func (r *technologyRepository) FindPage(db *gorm.DB, userID string, offset, limit int, orderBy string) ([]models.Technology, error) {
	var techs []models.Technology
	err := db.Where("user_id = ?", userID).
		Order(orderBy).
		Offset(offset).
		Limit(limit).
		Find(&techs).Error
	return techs, err
}

func (r *technologyRepository) Count(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Technology{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *technologyRepository) Save(db *gorm.DB, tech *models.Technology) error {
	result := db.Save(tech)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTechnologyNotFound
	}
	return nil
}

func (r *technologyRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Technology{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTechnologyNotFound
	}
	return nil
}
