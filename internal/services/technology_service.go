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
	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const resourceTypeTechnologies = "technologies"

type TechnologyService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTechnologyRequest) (*models.Technology, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Technology, error)
	List(ctx context.Context, db *gorm.DB, userID string, q dto.ListQuery) (*dto.Page[models.Technology], error)
	Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateTechnologyRequest) (*models.Technology, error)
	Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error

	UploadProfileImage(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Technology, error)
	UploadComponentImages(ctx context.Context, db *gorm.DB, userID, username, id string, files []*multipart.FileHeader) (*models.Technology, error)
	RemoveComponentImage(ctx context.Context, db *gorm.DB, userID, username, id, filename string) error
	ImagePath(db *gorm.DB, id, filename string, imageType imageconfig.ImageType) (string, error)
}

type technologyService struct {
	techRepo repositories.TechnologyRepository
	userRepo repositories.UserRepository
	images   *imagestorage.Service
	cache    cache.Cache
	order    ordering.List
}

func NewTechnologyService(
	techRepo repositories.TechnologyRepository,
	userRepo repositories.UserRepository,
	images *imagestorage.Service,
	c cache.Cache,
) TechnologyService {
	return &technologyService{
		techRepo: techRepo,
		userRepo: userRepo,
		images:   images,
		cache:    c,
		order:    ordering.List{Table: "technologies", OwnerColumn: "user_id"},
	}
}

func (s *technologyService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTechnologyRequest) (*models.Technology, error) {
	tech := &models.Technology{
		UserID:          userID,
		Name:            req.Name,
		Category:        req.Category,
		ComponentImages: []string{},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		pos, err := s.order.NextPosition(tx, userID)
		if err != nil {
			return err
		}
		tech.DisplayOrder = pos
		return s.techRepo.Create(tx, tech)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx)
	return tech, nil
}

func (s *technologyService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Technology, error) {
	key := cache.Key(resourceTypeTechnologies, "id", id)
	tech, err := cache.GetOrSet(ctx, s.cache, key, entityCacheTTL, func() (*models.Technology, error) {
		return s.techRepo.FindByID(db, id)
	})
	if err != nil {
		return nil, handleTechnologyError(err)
	}
	return tech, nil
}

func (s *technologyService) List(ctx context.Context, db *gorm.DB, userID string, q dto.ListQuery) (*dto.Page[models.Technology], error) {
	page, limit, orderBy := q.Normalized("display_order", "display_order", "name", "category", "created_at")
	key := cache.Key(resourceTypeTechnologies, "list", userID, q.CacheSuffix())

	result, err := cache.GetOrSet(ctx, s.cache, key, listCacheTTL, func() (*dto.Page[models.Technology], error) {
		techs, err := s.techRepo.FindPage(db, userID, (page-1)*limit, limit, orderBy)
		if err != nil {
			return nil, err
		}
		total, err := s.techRepo.Count(db, userID)
		if err != nil {
			return nil, err
		}
		return &dto.Page[models.Technology]{Items: techs, Total: total, Page: page, Limit: limit}, nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

func (s *technologyService) Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateTechnologyRequest) (*models.Technology, error) {
	var tech *models.Technology

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		tech, err = s.techRepo.FindByIDForUser(tx, id, userID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			tech.Name = *req.Name
		}
		if req.Category != nil {
			tech.Category = *req.Category
		}

		if req.DisplayOrder != nil && *req.DisplayOrder != tech.DisplayOrder {
			newPos, err := s.clampPosition(tx, userID, *req.DisplayOrder)
			if err != nil {
				return err
			}
			if err := s.order.Reorder(tx, tech.ID, userID, tech.DisplayOrder, newPos); err != nil {
				return err
			}
			tech.DisplayOrder = newPos
		}

		return s.techRepo.Save(tx, tech)
	})
	if err != nil {
		return nil, handleTechnologyError(err)
	}

	s.invalidate(ctx)
	return tech, nil
}

func (s *technologyService) Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		tech, err := s.techRepo.FindByIDForUser(tx, id, userID)
		if err != nil {
			return err
		}
		if err := s.techRepo.Delete(tx, id); err != nil {
			return err
		}
		return s.order.ShiftAfterDelete(tx, userID, tech.DisplayOrder)
	})
	if err != nil {
		return handleTechnologyError(err)
	}

	if err := s.images.DeleteAllResourceImages(resourceTypeTechnologies, id, username); err != nil {
		logger.Warn("failed to delete technology images", "id", id, "error", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *technologyService) UploadProfileImage(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Technology, error) {
	tech, err := s.techRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleTechnologyError(err)
	}

	loc := s.location(id, username, imageconfig.ImageTypeProfile)
	filename, err := s.images.UploadImage(ctx, file, loc)
	if err != nil {
		return nil, err
	}

	old := tech.ProfileImage
	tech.ProfileImage = filename
	if err := s.techRepo.Save(db, tech); err != nil {
		_ = s.images.DeleteImage(loc, filename)
		return nil, apperrors.InternalError(err)
	}

	if old != "" {
		_ = s.images.DeleteImage(loc, old)
	}

	s.invalidate(ctx)
	return tech, nil
}

func (s *technologyService) UploadComponentImages(ctx context.Context, db *gorm.DB, userID, username, id string, files []*multipart.FileHeader) (*models.Technology, error) {
	tech, err := s.techRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleTechnologyError(err)
	}

	loc := s.location(id, username, imageconfig.ImageTypeComponent)
	filenames, err := s.images.UploadImages(ctx, files, loc)
	if err != nil {
		return nil, err
	}
	if len(filenames) == 0 {
		return tech, nil
	}

	tech.ComponentImages = append(tech.ComponentImages, filenames...)
	if err := s.techRepo.Save(db, tech); err != nil {
		_ = s.images.DeleteImages(loc, filenames)
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx)
	return tech, nil
}

func (s *technologyService) RemoveComponentImage(ctx context.Context, db *gorm.DB, userID, username, id, filename string) error {
	tech, err := s.techRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		return handleTechnologyError(err)
	}

	kept := tech.ComponentImages[:0]
	removed := false
	for _, img := range tech.ComponentImages {
		if img == filename {
			removed = true
			continue
		}
		kept = append(kept, img)
	}
	if !removed {
		return apperrors.ErrImageNotFound(filename)
	}

	tech.ComponentImages = kept
	if err := s.techRepo.Save(db, tech); err != nil {
		return apperrors.InternalError(err)
	}

	_ = s.images.DeleteImage(s.location(id, username, imageconfig.ImageTypeComponent), filename)

	s.invalidate(ctx)
	return nil
}

func (s *technologyService) ImagePath(db *gorm.DB, id, filename string, imageType imageconfig.ImageType) (string, error) {
	tech, err := s.techRepo.FindByID(db, id)
	if err != nil {
		return "", handleTechnologyError(err)
	}
	owner, err := s.userRepo.FindByID(db, tech.UserID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return s.images.ImagePath(s.location(id, owner.Username, imageType), filename)
}

func (s *technologyService) location(id, username string, imageType imageconfig.ImageType) imagestorage.Location {
	return imagestorage.Location{
		ResourceType: resourceTypeTechnologies,
		ResourceID:   id,
		ImageType:    imageType,
		Username:     username,
	}
}

func (s *technologyService) clampPosition(db *gorm.DB, userID string, pos int) (int, error) {
	count, err := s.techRepo.Count(db, userID)
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

func (s *technologyService) invalidate(ctx context.Context) {
	if err := s.cache.DelByPrefix(ctx, resourceTypeTechnologies+":"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", resourceTypeTechnologies, "error", err)
	}
	if err := s.cache.DelByPrefix(ctx, "dashboard:"); err != nil {
		logger.Warn("cache invalidation failed", "prefix", "dashboard", "error", err)
	}
}

func handleTechnologyError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrTechnologyNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
