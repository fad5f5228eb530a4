package services

import (
	"context"
	"errors"
	"mime/multipart"

	"gorm.io/gorm"

	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/imagestorage"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const resourceTypeUsers = "users"

type UserService interface {
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	GetByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, db *gorm.DB, id string, file *multipart.FileHeader) (*models.User, error)
	AvatarPath(db *gorm.DB, username, filename string) (string, error)
}

type userService struct {
	repo   repositories.UserRepository
	images *imagestorage.Service
	cache  cache.Cache
}

func NewUserService(repo repositories.UserRepository, images *imagestorage.Service, c cache.Cache) UserService {
	return &userService{repo: repo, images: images, cache: c}
}

func (s *userService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	user, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	key := cache.Key(resourceTypeUsers, "username", username)
	user, err := cache.GetOrSet(ctx, s.cache, key, entityCacheTTL, func() (*models.User, error) {
		return s.repo.FindByUsername(db, username)
	})
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handleUserError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Headline != nil {
		user.Headline = *req.Headline
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.GithubURL != nil {
		user.GithubURL = *req.GithubURL
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = *req.LinkedinURL
	}
	if req.WebsiteURL != nil {
		user.WebsiteURL = *req.WebsiteURL
	}

	if err := s.repo.Save(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx)
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, db *gorm.DB, id string, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handleUserError(err)
	}

	loc := s.location(user.ID, user.Username)
	filename, err := s.images.UploadImage(ctx, file, loc)
	if err != nil {
		return nil, err
	}

	old := user.ProfileImage
	user.ProfileImage = filename
	if err := s.repo.Save(db, user); err != nil {
		_ = s.images.DeleteImage(loc, filename)
		return nil, apperrors.InternalError(err)
	}

	if old != "" {
		_ = s.images.DeleteImage(loc, old)
	}

	s.invalidate(ctx)
	return user, nil
}

func (s *userService) AvatarPath(db *gorm.DB, username, filename string) (string, error) {
	user, err := s.repo.FindByUsername(db, username)
	if err != nil {
		return "", handleUserError(err)
	}
	return s.images.ImagePath(s.location(user.ID, user.Username), filename)
}

func (s *userService) location(id, username string) imagestorage.Location {
	return imagestorage.Location{
		ResourceType: resourceTypeUsers,
		ResourceID:   id,
		ImageType:    imageconfig.ImageTypeProfile,
		Username:     username,
	}
}

func (s *userService) invalidate(ctx context.Context) {
	if err := s.cache.DelByPrefix(ctx, resourceTypeUsers+":"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", resourceTypeUsers, "error", err)
	}
}

func handleUserError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
