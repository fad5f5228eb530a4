package repositories

import (
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

var ErrExperienceNotFound = errors.New("experience not found")

type ExperienceRepository interface {
	Create(db *gorm.DB, exp *models.Experience) error
	FindByID(db *gorm.DB, id string) (*models.Experience, error)
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Experience, error)
	FindByUser(db *gorm.DB, userID string, kind models.ExperienceKind) ([]models.Experience, error)
	Save(db *gorm.DB, exp *models.Experience) error
	Delete(db *gorm.DB, id string) error
}

type experienceRepository struct{}

func NewExperienceRepository() ExperienceRepository {
	return &experienceRepository{}
}

func (r *experienceRepository) Create(db *gorm.DB, exp *models.Experience) error {
	return db.Create(exp).Error
}

func (r *experienceRepository) FindByID(db *gorm.DB, id string) (*models.Experience, error) {
	var exp models.Experience
	err := db.First(&exp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *experienceRepository) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Experience, error) {
	var exp models.Experience
	err := db.First(&exp, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// FindByUser lists a user's entries, optionally filtered by kind,
// newest first.
func (r *experienceRepository) FindByUser(db *gorm.DB, userID string, kind models.ExperienceKind) ([]models.Experience, error) {
	var exps []models.Experience
	query := db.Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("start_date DESC").Find(&exps).Error
	return exps, err
}

func (r *experienceRepository) Save(db *gorm.DB, exp *models.Experience) error {
	return db.Save(exp).Error
}

func (r *experienceRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Experience{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}
