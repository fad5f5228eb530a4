package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const resourceTypeMessages = "messages"

type MessageService interface {
	// Create is the one public write endpoint: anonymous visitors
	// leave messages through it.
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateMessageRequest) (*models.Message, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Message, error)
	List(ctx context.Context, db *gorm.DB, q dto.ListQuery) (*dto.Page[models.Message], error)
	SetRead(ctx context.Context, db *gorm.DB, id string, read bool) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	UnreadCount(ctx context.Context, db *gorm.DB) (int64, error)
}

type messageService struct {
	repo   repositories.MessageRepository
	sender email.Sender
	cache  cache.Cache
}

func NewMessageService(repo repositories.MessageRepository, sender email.Sender, c cache.Cache) MessageService {
	return &messageService{repo: repo, sender: sender, cache: c}
}

func (s *messageService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateMessageRequest) (*models.Message, error) {
	msg := &models.Message{
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	if err := s.repo.Create(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Notification failure must not fail the submission.
	go func() {
		if err := s.sender.NotifyMessageReceived(msg.SenderName, msg.SenderEmail, msg.Subject, msg.Body); err != nil {
			logger.Warn("message notification failed", "message_id", msg.ID, "error", err)
		}
	}()

	s.invalidate(ctx)
	return msg, nil
}

func (s *messageService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Message, error) {
	msg, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handleMessageError(err)
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, db *gorm.DB, q dto.ListQuery) (*dto.Page[models.Message], error) {
	page, limit, orderBy := q.Normalized("created_at", "created_at", "sender_name", "read")
	key := cache.Key(resourceTypeMessages, "list", q.CacheSuffix())

	result, err := cache.GetOrSet(ctx, s.cache, key, listCacheTTL, func() (*dto.Page[models.Message], error) {
		msgs, err := s.repo.FindPage(db, (page-1)*limit, limit, orderBy)
		if err != nil {
			return nil, err
		}
		total, err := s.repo.Count(db)
		if err != nil {
			return nil, err
		}
		return &dto.Page[models.Message]{Items: msgs, Total: total, Page: page, Limit: limit}, nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

func (s *messageService) SetRead(ctx context.Context, db *gorm.DB, id string, read bool) error {
	if err := s.repo.SetRead(db, id, read); err != nil {
		return handleMessageError(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *messageService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.repo.Delete(db, id); err != nil {
		return handleMessageError(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, db *gorm.DB) (int64, error) {
	count, err := s.repo.CountUnread(db)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *messageService) invalidate(ctx context.Context) {
	if err := s.cache.DelByPrefix(ctx, resourceTypeMessages+":"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", resourceTypeMessages, "error", err)
	}
	if err := s.cache.DelByPrefix(ctx, "dashboard:"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", "dashboard", "error", err)
	}
}

func handleMessageError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrMessageNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
