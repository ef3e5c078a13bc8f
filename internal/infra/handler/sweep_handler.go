package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

// SweepHandler exposes the sweep to an external scheduler such as Cloud
// Scheduler.
type SweepHandler struct {
	useCase app.SweepUseCase
}

func NewSweepHandler(useCase app.SweepUseCase) *SweepHandler {
	return &SweepHandler{
		useCase: useCase,
	}
}

func (h *SweepHandler) Sweep(c *gin.Context) {
	output, err := h.useCase.Sweep(c.Request.Context())
	if err != nil {
		handleError(c, err)

		return
	}

	if output.Skipped {
		slog.Info("sweep skipped, another sweep is running")
		c.JSON(http.StatusAccepted, output)

		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *SweepHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sweep", h.Sweep)
}
