package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

type NotificationHandler struct {
	useCase app.NotificationUseCase
}

func NewNotificationHandler(useCase app.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		useCase: useCase,
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.ListNotifications(c.Request.Context(), app.ListNotificationsInput{
		UserID: c.Param("user_id"),
		Limit:  req.Limit,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromNotificationsDTO(output))
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	output, err := h.useCase.CountUnread(c.Request.Context(), app.UserInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{
		UserID: output.UserID,
		Unread: output.Unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.useCase.MarkRead(c.Request.Context(), app.NotificationByIDInput{
		UserID: c.Param("user_id"),
		ID:     c.Param("id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, AffectedResponse{Affected: n})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.useCase.MarkAllRead(c.Request.Context(), app.UserInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, AffectedResponse{Affected: n})
}

func (h *NotificationHandler) RegisterRoutes(user *gin.RouterGroup) {
	notifications := user.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.CountUnread)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
