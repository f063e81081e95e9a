package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/application/service"
	"github.com/stockmate/stockmate-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	purchaseLogService *service.PurchaseLogService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(purchaseLogService *service.PurchaseLogService) *DashboardHandler {
	return &DashboardHandler{purchaseLogService: purchaseLogService}
}

// GetStats returns purchase statistics for the dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.purchaseLogService.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}
