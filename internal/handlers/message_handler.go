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

type MessageHandler struct {
	db       *gorm.DB
	service  services.MessageService
	validate *validator.Validator
}

func NewMessageHandler(db *gorm.DB, service services.MessageService, validate *validator.Validator) *MessageHandler {
	return &MessageHandler{db: db, service: service, validate: validate}
}

func (h *MessageHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/messages", h.Create)

	msgs := admin.Group("/messages")
	{
		msgs.GET("", h.List)
		msgs.GET("/unread-count", h.UnreadCount)
		msgs.GET("/:id", h.Get)
		msgs.PUT("/:id/read", h.MarkRead)
		msgs.PUT("/:id/unread", h.MarkUnread)
		msgs.DELETE("/:id", h.Delete)
	}
}

func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if !bindAndValidate(c, h.validate, &req) {
		return
	}

	msg, err := h.service.Create(c.Request.Context(), h.db, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) Get(c *gin.Context) {
	msg, err := h.service.GetByID(c.Request.Context(), h.db, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.service.List(c.Request.Context(), h.db, q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	h.setRead(c, true)
}

func (h *MessageHandler) MarkUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *MessageHandler) setRead(c *gin.Context, read bool) {
	if err := h.service.SetRead(c.Request.Context(), h.db, c.Param("id"), read); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), h.db, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), h.db)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
