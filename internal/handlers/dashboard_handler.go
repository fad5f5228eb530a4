package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"
)

type DashboardHandler struct {
	db      *gorm.DB
	service services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{db: db, service: service}
}

func (h *DashboardHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard/stats", h.Stats)
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), h.db, middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
