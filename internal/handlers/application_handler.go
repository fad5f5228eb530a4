package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

type ApplicationHandler struct {
	db       *gorm.DB
	service  services.ApplicationService
	validate *validator.Validator
}

func NewApplicationHandler(db *gorm.DB, service services.ApplicationService, validate *validator.Validator) *ApplicationHandler {
	return &ApplicationHandler{db: db, service: service, validate: validate}
}

func (h *ApplicationHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/applications/:id", h.Get)
	public.GET("/applications/:id/images/:imageType/:filename", h.GetImage)

	apps := admin.Group("/applications")
	{
		apps.GET("", h.List)
		apps.POST("", h.Create)
		apps.PUT("/:id", h.Update)
		apps.DELETE("/:id", h.Delete)
		apps.PUT("/:id/technologies", h.SetTechnologies)
		apps.POST("/:id/images/profile", h.UploadProfileImage)
		apps.POST("/:id/images/gallery", h.UploadGalleryImages)
		apps.DELETE("/:id/images/gallery/:filename", h.RemoveGalleryImage)
	}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	app, err := h.service.Create(c.Request.Context(), h.db, middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.service.GetByID(c.Request.Context(), h.db, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.service.List(c.Request.Context(), h.db, middleware.GetUserID(c), q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	var req dto.UpdateApplicationRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	app, err := h.service.Update(c.Request.Context(), h.db, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) SetTechnologies(c *gin.Context) {
	var req dto.SetTechnologiesRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	app, err := h.service.SetTechnologies(c.Request.Context(), h.db, middleware.GetUserID(c), c.Param("id"), req.TechnologyIDs)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UploadProfileImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	app, err := h.service.UploadProfileImage(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UploadGalleryImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("multipart form is required"))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("at least one file is required"))
		return
	}

	app, err := h.service.UploadGalleryImages(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), files)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) RemoveGalleryImage(c *gin.Context) {
	err := h.service.RemoveGalleryImage(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), c.Param("filename"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) GetImage(c *gin.Context) {
	imageType := imageconfig.ImageType(c.Param("imageType"))
	if imageType != imageconfig.ImageTypeProfile && imageType != imageconfig.ImageTypeGallery {
		apperrors.HandleError(c, apperrors.NewBadRequestError("unknown image type"))
		return
	}

	path, err := h.service.ImagePath(h.db, c.Param("id"), c.Param("filename"), imageType)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.File(path)
}
