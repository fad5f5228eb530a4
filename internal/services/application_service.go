package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/imagestorage"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const (
	resourceTypeApplications = "applications"

	listCacheTTL   = 300 * time.Second
	entityCacheTTL = 600 * time.Second
)

type ApplicationService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Application, error)
	List(ctx context.Context, db *gorm.DB, userID string, q dto.ListQuery) (*dto.Page[models.Application], error)
	Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error
	SetTechnologies(ctx context.Context, db *gorm.DB, userID, id string, techIDs []string) (*models.Application, error)

	UploadProfileImage(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Application, error)
	UploadGalleryImages(ctx context.Context, db *gorm.DB, userID, username, id string, files []*multipart.FileHeader) (*models.Application, error)
	RemoveGalleryImage(ctx context.Context, db *gorm.DB, userID, username, id, filename string) error
	ImagePath(db *gorm.DB, id, filename string, imageType imageconfig.ImageType) (string, error)
}

type applicationService struct {
	appRepo  repositories.ApplicationRepository
	techRepo repositories.TechnologyRepository
	userRepo repositories.UserRepository
	images   *imagestorage.Service
	cache    cache.Cache
	order    ordering.List
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	techRepo repositories.TechnologyRepository,
	userRepo repositories.UserRepository,
	images *imagestorage.Service,
	c cache.Cache,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		techRepo: techRepo,
		userRepo: userRepo,
		images:   images,
		cache:    c,
		order:    ordering.List{Table: "applications", OwnerColumn: "user_id"},
	}
}

func (s *applicationService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
		Published:   true,
		Images:      []string{},
	}
	if req.Published != nil {
		app.Published = *req.Published
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		pos, err := s.order.NextPosition(tx, userID)
		if err != nil {
			return err
		}
		app.DisplayOrder = pos
		return s.appRepo.Create(tx, app)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx)
	return app, nil
}

func (s *applicationService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	key := cache.Key(resourceTypeApplications, "id", id)
	app, err := cache.GetOrSet(ctx, s.cache, key, entityCacheTTL, func() (*models.Application, error) {
		return s.appRepo.FindByID(db, id)
	})
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, db *gorm.DB, userID string, q dto.ListQuery) (*dto.Page[models.Application], error) {
	page, limit, orderBy := q.Normalized("display_order", "display_order", "title", "created_at", "updated_at")
	key := cache.Key(resourceTypeApplications, "list", userID, q.CacheSuffix())

	result, err := cache.GetOrSet(ctx, s.cache, key, listCacheTTL, func() (*dto.Page[models.Application], error) {
		apps, err := s.appRepo.FindPage(db, userID, (page-1)*limit, limit, orderBy)
		if err != nil {
			return nil, err
		}
		total, err := s.appRepo.Count(db, userID)
		if err != nil {
			return nil, err
		}
		return &dto.Page[models.Application]{Items: apps, Total: total, Page: page, Limit: limit}, nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

func (s *applicationService) Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	var app *models.Application

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = s.appRepo.FindByIDForUser(tx, id, userID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			app.Title = *req.Title
		}
		if req.Description != nil {
			app.Description = *req.Description
		}
		if req.RepoURL != nil {
			app.RepoURL = *req.RepoURL
		}
		if req.LiveURL != nil {
			app.LiveURL = *req.LiveURL
		}
		if req.Published != nil {
			app.Published = *req.Published
		}

		if req.DisplayOrder != nil && *req.DisplayOrder != app.DisplayOrder {
			newPos, err := s.clampPosition(tx, userID, *req.DisplayOrder)
			if err != nil {
				return err
			}
			// Shift the others, then set the moved row: both halves of
			// the contract live in this one transaction.
			if err := s.order.Reorder(tx, app.ID, userID, app.DisplayOrder, newPos); err != nil {
				return err
			}
			app.DisplayOrder = newPos
		}

		return s.appRepo.Save(tx, app)
	})
	if err != nil {
		return nil, handleApplicationError(err)
	}

	s.invalidate(ctx)
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		app, err := s.appRepo.FindByIDForUser(tx, id, userID)
		if err != nil {
			return err
		}
		if err := s.appRepo.Delete(tx, id); err != nil {
			return err
		}
		return s.order.ShiftAfterDelete(tx, userID, app.DisplayOrder)
	})
	if err != nil {
		return handleApplicationError(err)
	}

	// Row is gone; the whole image directory goes with it.
	if err := s.images.DeleteAllResourceImages(resourceTypeApplications, id, username); err != nil {
		logger.Warn("failed to delete application images", "id", id, "error", err)
	}

	s.invalidate(ctx)
	return nil
}

// SetTechnologies replaces the application's technology set. Every
// requested id must exist in the owner's scope; the error names the
// ids that do not.
func (s *applicationService) SetTechnologies(ctx context.Context, db *gorm.DB, userID, id string, techIDs []string) (*models.Application, error) {
	app, err := s.appRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleApplicationError(err)
	}

	techs, err := s.techRepo.FindByIDsForUser(db, techIDs, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if len(techs) != len(techIDs) {
		found := make(map[string]bool, len(techs))
		for _, t := range techs {
			found[t.ID] = true
		}
		var missing []string
		for _, techID := range techIDs {
			if !found[techID] {
				missing = append(missing, techID)
			}
		}
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("technologies not found: %v", missing)).WithDetails(missing)
	}

	if err := s.appRepo.ReplaceTechnologies(db, app, techs); err != nil {
		return nil, apperrors.InternalError(err)
	}
	app.Technologies = techs

	s.invalidate(ctx)
	return app, nil
}

func (s *applicationService) UploadProfileImage(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Application, error) {
	app, err := s.appRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleApplicationError(err)
	}

	loc := s.location(id, username, imageconfig.ImageTypeProfile)
	filename, err := s.images.UploadImage(ctx, file, loc)
	if err != nil {
		return nil, err
	}

	old := app.ProfileImage
	app.ProfileImage = filename
	if err := s.appRepo.Save(db, app); err != nil {
		// Roll the orphaned upload back; the entity still points at
		// the old file.
		_ = s.images.DeleteImage(loc, filename)
		return nil, apperrors.InternalError(err)
	}

	if old != "" {
		_ = s.images.DeleteImage(loc, old)
	}

	s.invalidate(ctx)
	return app, nil
}

func (s *applicationService) UploadGalleryImages(ctx context.Context, db *gorm.DB, userID, username, id string, files []*multipart.FileHeader) (*models.Application, error) {
	app, err := s.appRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleApplicationError(err)
	}

	loc := s.location(id, username, imageconfig.ImageTypeGallery)
	filenames, err := s.images.UploadImages(ctx, files, loc)
	if err != nil {
		return nil, err
	}
	if len(filenames) == 0 {
		return app, nil
	}

	app.Images = append(app.Images, filenames...)
	if err := s.appRepo.Save(db, app); err != nil {
		_ = s.images.DeleteImages(loc, filenames)
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx)
	return app, nil
}

func (s *applicationService) RemoveGalleryImage(ctx context.Context, db *gorm.DB, userID, username, id, filename string) error {
	app, err := s.appRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return handleApplicationError(err)
	}

	kept := app.Images[:0]
	removed := false
	for _, img := range app.Images {
		if img == filename {
			removed = true
			continue
		}
		kept = append(kept, img)
	}
	if !removed {
		return apperrors.ErrImageNotFound(filename)
	}

	app.Images = kept
	if err := s.appRepo.Save(db, app); err != nil {
		return apperrors.InternalError(err)
	}

	_ = s.images.DeleteImage(s.location(id, username, imageconfig.ImageTypeGallery), filename)

	s.invalidate(ctx)
	return nil
}

// ImagePath resolves an image for the public read endpoint. The owner's
// username is part of the directory scheme, so it is looked up from the
// application row.
func (s *applicationService) ImagePath(db *gorm.DB, id, filename string, imageType imageconfig.ImageType) (string, error) {
	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		return "", handleApplicationError(err)
	}
	owner, err := s.userRepo.FindByID(db, app.UserID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return s.images.ImagePath(s.location(id, owner.Username, imageType), filename)
}

func (s *applicationService) location(id, username string, imageType imageconfig.ImageType) imagestorage.Location {
	return imagestorage.Location{
		ResourceType: resourceTypeApplications,
		ResourceID:   id,
		ImageType:    imageType,
		Username:     username,
	}
}

// clampPosition bounds a requested position to [1, N].
func (s *applicationService) clampPosition(db *gorm.DB, userID string, pos int) (int, error) {
	count, err := s.appRepo.Count(db, userID)
	if err != nil {
		return 0, err
	}
	if pos < 1 {
		return 1, nil
	}
	if int64(pos) > count {
		return int(count), nil
	}
	return pos, nil
}

// invalidate drops every application key family. Coarse on purpose:
// writes are rare next to reads and prefix deletion cannot miss a key.
func (s *applicationService) invalidate(ctx context.Context) {
	if err := s.cache.DelByPrefix(ctx, resourceTypeApplications+":"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", resourceTypeApplications, "error", err)
	}
	if err := s.cache.DelByPrefix(ctx, "dashboard:"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", "dashboard", "error", err)
	}
}

func handleApplicationError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrApplicationNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
