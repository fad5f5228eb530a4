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

type TechnologyHandler struct {
	db       *gorm.DB
	service  services.TechnologyService
	validate *validator.Validator
}

func NewTechnologyHandler(db *gorm.DB, service services.TechnologyService, validate *validator.Validator) *TechnologyHandler {
	return &TechnologyHandler{db: db, service: service, validate: validate}
}

func (h *TechnologyHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/technologies/:id", h.Get)
	public.GET("/technologies/:id/images/:imageType/:filename", h.GetImage)

	techs := admin.Group("/technologies")
	{
		techs.GET("", h.List)
		techs.POST("", h.Create)
		techs.PUT("/:id", h.Update)
		techs.DELETE("/:id", h.Delete)
		techs.POST("/:id/images/profile", h.UploadProfileImage)
		techs.POST("/:id/images/component", h.UploadComponentImages)
		techs.DELETE("/:id/images/component/:filename", h.RemoveComponentImage)
	}
}

func (h *TechnologyHandler) Create(c *gin.Context) {
	var req dto.CreateTechnologyRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	tech, err := h.service.Create(c.Request.Context(), h.db, middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tech)
}

func (h *TechnologyHandler) Get(c *gin.Context) {
	tech, err := h.service.GetByID(c.Request.Context(), h.db, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnologyHandler) List(c *gin.Context) {
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

func (h *TechnologyHandler) Update(c *gin.Context) {
	var req dto.UpdateTechnologyRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	tech, err := h.service.Update(c.Request.Context(), h.db, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnologyHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TechnologyHandler) UploadProfileImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	tech, err := h.service.UploadProfileImage(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnologyHandler) UploadComponentImages(c *gin.Context) {
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

	tech, err := h.service.UploadComponentImages(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), files)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnologyHandler) RemoveComponentImage(c *gin.Context) {
	err := h.service.RemoveComponentImage(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), c.Param("filename"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TechnologyHandler) GetImage(c *gin.Context) {
	imageType := imageconfig.ImageType(c.Param("imageType"))
	if imageType != imageconfig.ImageTypeProfile && imageType != imageconfig.ImageTypeComponent {
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
