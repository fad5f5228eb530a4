package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

type UserHandler struct {
	db       *gorm.DB
	service  services.UserService
	validate *validator.Validator
}

func NewUserHandler(db *gorm.DB, service services.UserService, validate *validator.Validator) *UserHandler {
	return &UserHandler{db: db, service: service, validate: validate}
}

func (h *UserHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/profiles/:username", h.GetProfile)
	public.GET("/profiles/:username/avatar/:filename", h.GetAvatar)

	profile := admin.Group("/profile")
	{
		profile.GET("", h.Me)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

// GetProfile is the public view of an owner. The password hash never
// serializes (json:"-" on the model), so the model can go out as is.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetByUsername(c.Request.Context(), h.db, c.Param("username"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetAvatar(c *gin.Context) {
	path, err := h.service.AvatarPath(h.db, c.Param("username"), c.Param("filename"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.File(path)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), h.db, middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), h.db, middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	user, err := h.service.UploadAvatar(c.Request.Context(), h.db, middleware.GetUserID(c), file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
