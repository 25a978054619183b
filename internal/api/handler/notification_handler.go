package handler

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultNotificationPageSize = 20

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications 通知列表，unread=true 时只返回未读
func (s *NotificationHandler) GetNotifications(c *gin.Context) {
	list, err := s.notificationService.GetNotificationList(
		c.Request.Context(),
		c.GetUint64(middleware.UserIDKey),
		c.Query("unread") == "true",
		intQuery(c, "page", 1),
		intQuery(c, "limit", defaultNotificationPageSize),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) GetUnreadCount(c *gin.Context) {
	res, err := s.notificationService.GetUnreadCount(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	err := s.notificationService.MarkRead(c.Request.Context(), c.GetUint64(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	res, err := s.notificationService.MarkAllRead(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) DeleteNotification(c *gin.Context) {
	err := s.notificationService.DeleteNotification(c.Request.Context(), c.GetUint64(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
