package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

type ExperienceHandler struct {
	db       *gorm.DB
	service  services.ExperienceService
	users    services.UserService
	validate *validator.Validator
}

func NewExperienceHandler(db *gorm.DB, service services.ExperienceService, users services.UserService, validate *validator.Validator) *ExperienceHandler {
	return &ExperienceHandler{db: db, service: service, users: users, validate: validate}
}

func (h *ExperienceHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/profiles/:username/experiences", h.ListPublic)
	public.GET("/experiences/:id/certificate/:filename", h.GetCertificate)

	exps := admin.Group("/experiences")
	{
		exps.GET("", h.List)
		exps.POST("", h.Create)
		exps.PUT("/:id", h.Update)
		exps.DELETE("/:id", h.Delete)
		exps.POST("/:id/certificate", h.UploadCertificate)
	}
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req dto.CreateExperienceRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	exp, err := h.service.Create(c.Request.Context(), h.db, middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exp)
}

func (h *ExperienceHandler) List(c *gin.Context) {
	kind := models.ExperienceKind(c.Query("kind"))
	exps, err := h.service.ListByUser(c.Request.Context(), h.db, middleware.GetUserID(c), kind)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exps)
}

func (h *ExperienceHandler) ListPublic(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), h.db, c.Param("username"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	kind := models.ExperienceKind(c.Query("kind"))
	exps, err := h.service.ListByUser(c.Request.Context(), h.db, user.ID, kind)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exps)
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	var req dto.UpdateExperienceRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	exp, err := h.service.Update(c.Request.Context(), h.db, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExperienceHandler) UploadCertificate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	exp, err := h.service.UploadCertificate(c.Request.Context(), h.db, middleware.GetUserID(c), middleware.GetUsername(c), c.Param("id"), file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

func (h *ExperienceHandler) GetCertificate(c *gin.Context) {
	path, err := h.service.CertificatePath(h.db, c.Param("id"), c.Param("filename"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.File(path)
}
