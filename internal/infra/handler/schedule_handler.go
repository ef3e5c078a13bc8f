package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

type ScheduleHandler struct {
	useCase app.ScheduleUseCase
}

func NewScheduleHandler(useCase app.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{
		useCase: useCase,
	}
}

func (h *ScheduleHandler) SeedDefaults(c *gin.Context) {
	output, err := h.useCase.SeedDefaults(c.Request.Context(), app.SeedDefaultSchedulesInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromSchedulesDTO(output))
}

// ListSchedules returns the global catalog by default. With assignment_id
// it returns that assignment's entries, plus the global ones unless
// include_global=false.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req ListSchedulesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)

		return
	}

	includeGlobal := true
	if req.IncludeGlobal != nil {
		includeGlobal = *req.IncludeGlobal
	}

	output, err := h.useCase.ListSchedules(c.Request.Context(), app.ListSchedulesInput{
		UserID:        c.Param("user_id"),
		AssignmentID:  req.AssignmentID,
		IncludeGlobal: includeGlobal,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromSchedulesDTO(output))
}

func (h *ScheduleHandler) AddSchedule(c *gin.Context) {
	slog.Info("handling add schedule request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var req AddScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.AddSchedule(c.Request.Context(), app.AddScheduleInput{
		UserID:       c.Param("user_id"),
		AssignmentID: req.AssignmentID,
		Offset:       req.Offset,
		Direction:    req.Direction,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusCreated, FromScheduleDTO(output))
}

func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.UpdateSchedule(c.Request.Context(), app.UpdateScheduleInput{
		UserID:    c.Param("user_id"),
		ID:        c.Param("id"),
		Enabled:   req.Enabled,
		Offset:    req.Offset,
		Direction: req.Direction,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromScheduleDTO(output))
}

func (h *ScheduleHandler) RemoveSchedule(c *gin.Context) {
	err := h.useCase.RemoveSchedule(c.Request.Context(), app.RemoveScheduleInput{
		UserID: c.Param("user_id"),
		ID:     c.Param("id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) RegisterRoutes(user *gin.RouterGroup) {
	schedules := user.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.AddSchedule)
		schedules.POST("/defaults", h.SeedDefaults)
		schedules.PATCH("/:id", h.UpdateSchedule)
		schedules.DELETE("/:id", h.RemoveSchedule)
	}
}
