package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/application/service"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	"github.com/stockmate/stockmate-api/internal/domain/repository"
	"github.com/stockmate/stockmate-api/internal/presentation/http/dto/request"
	"github.com/stockmate/stockmate-api/internal/presentation/http/dto/response"
	"github.com/stockmate/stockmate-api/pkg/pagination"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

// PurchaseHandler handles recorded-purchase HTTP requests
type PurchaseHandler struct {
	purchaseLogService *service.PurchaseLogService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseLogService *service.PurchaseLogService) *PurchaseHandler {
	return &PurchaseHandler{purchaseLogService: purchaseLogService}
}

// List handles listing recorded purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.PurchaseRecordFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.PaymentMode != "" {
		mode := enum.PaymentMode(filter.PaymentMode)
		if !mode.IsValid() {
			response.BadRequest(c, "Invalid payment mode")
			return
		}
		params.PaymentMode = &mode
	}

	if filter.StartDate != "" {
		if startDate, err := time.Parse(entity.DateLayout, filter.StartDate); err == nil {
			params.StartDate = &startDate
		}
	}

	if filter.EndDate != "" {
		if endDate, err := time.Parse(entity.DateLayout, filter.EndDate); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.purchaseLogService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Get handles getting a single recorded purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	record, err := h.purchaseLogService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", record)
}
