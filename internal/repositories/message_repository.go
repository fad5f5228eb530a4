package repositories

import (
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, msg *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	FindPage(db *gorm.DB, offset, limit int, orderBy string) ([]models.Message, error)
	Count(db *gorm.DB) (int64, error)
	CountUnread(db *gorm.DB) (int64, error)
	SetRead(db *gorm.DB, id string, read bool) error
	Delete(db *gorm.DB, id string) error
}

type messageRepository struct{}

func NewMessageRepository() MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, msg *models.Message) error {
	return db.Create(msg).Error
}

func (r *messageRepository) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var msg models.Message
	err := db.First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) FindPage(db *gorm.DB, offset, limit int, orderBy string) ([]models.Message, error) {
	var msgs []models.Message
	err := db.Order(orderBy).Offset(offset).Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *messageRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (r *messageRepository) CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *messageRepository) SetRead(db *gorm.DB, id string, read bool) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).Update("read", read)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Message{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
