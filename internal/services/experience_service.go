package services

import (
	"context"
	"errors"
	"mime/multipart"

	"gorm.io/gorm"

	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/imagestorage"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

const resourceTypeExperiences = "experiences"

type ExperienceService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateExperienceRequest) (*models.Experience, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID string, kind models.ExperienceKind) ([]models.Experience, error)
	Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateExperienceRequest) (*models.Experience, error)
	Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error

	UploadCertificate(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Experience, error)
	CertificatePath(db *gorm.DB, id, filename string) (string, error)
}

type experienceService struct {
	repo     repositories.ExperienceRepository
	userRepo repositories.UserRepository
	images   *imagestorage.Service
}

func NewExperienceService(
	repo repositories.ExperienceRepository,
	userRepo repositories.UserRepository,
	images *imagestorage.Service,
	registry *imageconfig.Registry,
) ExperienceService {
	// Certificate scans live under their own resource type with a
	// preset roomy enough to keep text legible.
	registry.Register(resourceTypeExperiences, imageconfig.ResourceConfig{
		imageconfig.ImageTypeProfile: {
			MaxWidth:         1200,
			MaxHeight:        1600,
			Fit:              imageconfig.FitInside,
			Position:         imageconfig.PositionCenter,
			Quality:          85,
			AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
			MaxFileSize:      5 * 1024 * 1024,
			OutputFormat:     imageconfig.FormatJPEG,
		},
	})

	return &experienceService{repo: repo, userRepo: userRepo, images: images}
}

func (s *experienceService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateExperienceRequest) (*models.Experience, error) {
	exp := &models.Experience{
		UserID:       userID,
		Kind:         models.ExperienceKind(req.Kind),
		Title:        req.Title,
		Organization: req.Organization,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	if err := s.repo.Create(db, exp); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return exp, nil
}

func (s *experienceService) ListByUser(ctx context.Context, db *gorm.DB, userID string, kind models.ExperienceKind) ([]models.Experience, error) {
	exps, err := s.repo.FindByUser(db, userID, kind)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return exps, nil
}

func (s *experienceService) Update(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateExperienceRequest) (*models.Experience, error) {
	exp, err := s.repo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleExperienceError(err)
	}

	if req.Kind != nil {
		exp.Kind = models.ExperienceKind(*req.Kind)
	}
	if req.Title != nil {
		exp.Title = *req.Title
	}
	if req.Organization != nil {
		exp.Organization = *req.Organization
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}
	if req.StartDate != nil {
		exp.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		exp.EndDate = req.EndDate
	}

	if err := s.repo.Save(db, exp); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return exp, nil
}

func (s *experienceService) Delete(ctx context.Context, db *gorm.DB, userID, username, id string) error {
	if _, err := s.repo.FindByIDForUser(db, id, userID); err != nil {
		return handleExperienceError(err)
	}
	if err := s.repo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.images.DeleteAllResourceImages(resourceTypeExperiences, id, username); err != nil {
		logger.Warn("failed to delete experience images", "id", id, "error", err)
	}
	return nil
}

func (s *experienceService) UploadCertificate(ctx context.Context, db *gorm.DB, userID, username, id string, file *multipart.FileHeader) (*models.Experience, error) {
	exp, err := s.repo.FindByIDForUser(db, id, userID)
	if err != nil {
		return nil, handleExperienceError(err)
	}

	loc := s.location(id, username)
	filename, err := s.images.UploadImage(ctx, file, loc)
	if err != nil {
		return nil, err
	}

	old := exp.CertificateImage
	exp.CertificateImage = filename
	if err := s.repo.Save(db, exp); err != nil {
		_ = s.images.DeleteImage(loc, filename)
		return nil, apperrors.InternalError(err)
	}

	if old != "" {
		_ = s.images.DeleteImage(loc, old)
	}
	return exp, nil
}

func (s *experienceService) CertificatePath(db *gorm.DB, id, filename string) (string, error) {
	exp, err := s.repo.FindByID(db, id)
	if err != nil {
		return "", handleExperienceError(err)
	}
	owner, err := s.userRepo.FindByID(db, exp.UserID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return s.images.ImagePath(s.location(id, owner.Username), filename)
}

func (s *experienceService) location(id, username string) imagestorage.Location {
	return imagestorage.Location{
		ResourceType: resourceTypeExperiences,
		ResourceID:   id,
		ImageType:    imageconfig.ImageTypeProfile,
		Username:     username,
	}
}

func handleExperienceError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrExperienceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
