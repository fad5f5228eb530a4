package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

type AuthHandler struct {
	db       *gorm.DB
	service  services.AuthService
	validate *validator.Validator
}

func NewAuthHandler(db *gorm.DB, service services.AuthService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{db: db, service: service, validate: validate}
}

func (h *AuthHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), h.db, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
