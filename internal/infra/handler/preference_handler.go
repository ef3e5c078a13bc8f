package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

type PreferenceHandler struct {
	useCase app.PreferenceUseCase
}

func NewPreferenceHandler(useCase app.PreferenceUseCase) *PreferenceHandler {
	return &PreferenceHandler{
		useCase: useCase,
	}
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	output, err := h.useCase.GetPreferences(c.Request.Context(), app.UserInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromPreferencesDTO(output))
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.UpdatePreferences(c.Request.Context(), app.UpdatePreferencesInput{
		UserID:                 c.Param("user_id"),
		AssignmentReminder:     req.AssignmentReminder,
		PushNotification:       req.PushNotification,
		EmailNotification:      req.EmailNotification,
		AssignmentNotification: req.AssignmentNotification,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromPreferencesDTO(output))
}

func (h *PreferenceHandler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	output, err := h.useCase.RegisterDevice(c.Request.Context(), app.RegisterDeviceInput{
		UserID:      c.Param("user_id"),
		Token:       req.Token,
		Platform:    req.Platform,
		DeviceID:    req.DeviceID,
		DeviceModel: req.DeviceModel,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDeviceDTO(output))
}

func (h *PreferenceHandler) ListDevices(c *gin.Context) {
	output, err := h.useCase.ListDevices(c.Request.Context(), app.UserInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDevicesDTO(output))
}

func (h *PreferenceHandler) RegisterRoutes(user *gin.RouterGroup) {
	user.GET("/preferences", h.GetPreferences)
	user.PATCH("/preferences", h.UpdatePreferences)
	user.GET("/devices", h.ListDevices)
	user.POST("/devices", h.RegisterDevice)
}
