package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const statsCacheTTL = 60 * time.Second

type DashboardService interface {
	Stats(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardStats, error)
}

type dashboardService struct {
	appRepo  repositories.ApplicationRepository
	techRepo repositories.TechnologyRepository
	msgRepo  repositories.MessageRepository
	cache    cache.Cache
}

func NewDashboardService(
	appRepo repositories.ApplicationRepository,
	techRepo repositories.TechnologyRepository,
	msgRepo repositories.MessageRepository,
	c cache.Cache,
) DashboardService {
	return &dashboardService{appRepo: appRepo, techRepo: techRepo, msgRepo: msgRepo, cache: c}
}

func (s *dashboardService) Stats(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardStats, error) {
	key := cache.Key("dashboard", "stats", userID)

	stats, err := cache.GetOrSet(ctx, s.cache, key, statsCacheTTL, func() (*dto.DashboardStats, error) {
		apps, err := s.appRepo.Count(db, userID)
		if err != nil {
			return nil, err
		}
		techs, err := s.techRepo.Count(db, userID)
		if err != nil {
			return nil, err
		}
		msgs, err := s.msgRepo.Count(db)
		if err != nil {
			return nil, err
		}
		unread, err := s.msgRepo.CountUnread(db)
		if err != nil {
			return nil, err
		}
		return &dto.DashboardStats{
			Applications:   apps,
			Technologies:   techs,
			Messages:       msgs,
			UnreadMessages: unread,
		}, nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
