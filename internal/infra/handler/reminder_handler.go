package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type ReminderHandler struct {
	useCase app.ReminderUseCase
}

func NewReminderHandler(useCase app.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{
		useCase: useCase,
	}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID := c.Param("user_id")

	slog.Info("handling create reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.CreateCustomReminder(c.Request.Context(), app.CreateCustomReminderInput{
		UserID:        userID,
		ReminderAt:    req.ReminderAt,
		Title:         req.Title,
		Message:       req.Message,
		ReferenceKind: req.ReferenceKind,
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	slog.Info("custom reminder created",
		"reminder_id", output.ID,
	)
	c.JSON(http.StatusCreated, FromReminderDTO(output))
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	var req ListRemindersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.ListReminders(c.Request.Context(), app.ListRemindersInput{
		UserID: c.Param("user_id"),
		Origin: req.Origin,
		Status: req.Status,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromRemindersDTO(output))
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	output, err := h.useCase.GetReminder(c.Request.Context(), h.byID(c))
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromReminderDTO(output))
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	input := h.byID(c)

	slog.Info("handling delete reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"reminder_id", input.ID,
	)

	if err := h.useCase.DeleteReminder(c.Request.Context(), input); err != nil {
		handleError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) DisableReminder(c *gin.Context) {
	input := h.byID(c)

	slog.Info("handling disable reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"reminder_id", input.ID,
	)

	output, err := h.useCase.DisableReminder(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromReminderDTO(output))
}

func (h *ReminderHandler) GetReminderHistory(c *gin.Context) {
	output, err := h.useCase.GetReminderHistory(c.Request.Context(), h.byID(c))
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromSendHistoriesDTO(output))
}

func (h *ReminderHandler) ListAssignmentReminders(c *gin.Context) {
	output, err := h.useCase.ListAssignmentReminders(c.Request.Context(), app.ListAssignmentRemindersInput{
		UserID:       c.Param("user_id"),
		AssignmentID: c.Param("assignment_id"),
		Status:       c.Query("status"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromRemindersDTO(output))
}

// AssignmentChanged is called by the assignment service after a create or
// update. It rebuilds the assignment's AUTO reminders.
func (h *ReminderHandler) AssignmentChanged(c *gin.Context) {
	input := app.ReconcileInput{
		UserID:       c.Param("user_id"),
		AssignmentID: c.Param("assignment_id"),
	}

	slog.Info("handling assignment changed hook",
		"path", c.Request.URL.Path,
		"assignment_id", input.AssignmentID,
	)

	output, err := h.useCase.Reconcile(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromReconcileDTO(output))
}

func (h *ReminderHandler) AssignmentClosed(c *gin.Context) {
	var req AssignmentClosedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	reason := domain.ReasonAssignmentCompleted
	if req.Status == string(domain.AssignmentStatusCancelled) {
		reason = domain.ReasonAssignmentCancelled
	}

	affected, err := h.useCase.DisableAssignmentReminders(c.Request.Context(), app.DisableAssignmentRemindersInput{
		UserID:       c.Param("user_id"),
		AssignmentID: c.Param("assignment_id"),
		Reason:       reason,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, AffectedResponse{Affected: affected})
}

func (h *ReminderHandler) AssignmentDeleted(c *gin.Context) {
	affected, err := h.useCase.PurgeAssignmentReminders(c.Request.Context(), app.PurgeAssignmentRemindersInput{
		UserID:       c.Param("user_id"),
		AssignmentID: c.Param("assignment_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, AffectedResponse{Affected: affected})
}

func (h *ReminderHandler) ReconcileUser(c *gin.Context) {
	output, err := h.useCase.ReconcileUser(c.Request.Context(), app.ReconcileUserInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromReconcileUserDTO(output))
}

func (h *ReminderHandler) byID(c *gin.Context) app.ReminderByIDInput {
	return app.ReminderByIDInput{
		UserID: c.Param("user_id"),
		ID:     c.Param("id"),
	}
}

// RegisterRoutes mounts the reminder routes on a group already scoped by
// /users/:user_id.
func (h *ReminderHandler) RegisterRoutes(user *gin.RouterGroup) {
	reminders := user.Group("/reminders")
	{
		reminders.POST("", h.CreateReminder)
		reminders.GET("", h.ListReminders)
		reminders.GET("/:id", h.GetReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
		reminders.POST("/:id/disable", h.DisableReminder)
		reminders.GET("/:id/history", h.GetReminderHistory)
	}

	assignments := user.Group("/assignments/:assignment_id")
	{
		assignments.GET("/reminders", h.ListAssignmentReminders)
		assignments.POST("/changed", h.AssignmentChanged)
		assignments.POST("/closed", h.AssignmentClosed)
		assignments.DELETE("", h.AssignmentDeleted)
	}

	user.POST("/reconcile", h.ReconcileUser)
}
