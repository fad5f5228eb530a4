package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio_backend/internal/models"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Application, error)
	FindPage(db *gorm.DB, userID string, offset, limit int, orderBy string) ([]models.Application, error)
	Count(db *gorm.DB, userID string) (int64, error)
	Save(db *gorm.DB, app *models.Application) error
	Delete(db *gorm.DB, id string) error
	ReplaceTechnologies(db *gorm.DB, app *models.Application, techs []models.Technology) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Technologies").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindByIDForUser scopes the lookup to the owner; another user's row
// comes back as not-found.
func (r *applicationRepository) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Technologies").First(&app, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindPage(db *gorm.DB, userID string, offset, limit int, orderBy string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Technologies").
		Where("user_id = ?", userID).
		Order(orderBy).
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) Count(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Save updates the row's own columns; the m2m set is managed only
// through ReplaceTechnologies.
func (r *applicationRepository) Save(db *gorm.DB, app *models.Application) error {
	result := db.Omit(clause.Associations).Save(app)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ReplaceTechnologies swaps the full m2m set in one association call.
func (r *applicationRepository) ReplaceTechnologies(db *gorm.DB, app *models.Application, techs []models.Technology) error {
	return db.Model(app).Association("Technologies").Replace(techs)
}
