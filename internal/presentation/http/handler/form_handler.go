package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/application/service"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/presentation/http/dto/request"
	"github.com/stockmate/stockmate-api/internal/presentation/http/dto/response"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

// FormHandler handles purchase-order form HTTP requests
type FormHandler struct {
	formService *service.OrderFormService
	jwtManager  *utils.JWTManager
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService *service.OrderFormService, jwtManager *utils.JWTManager) *FormHandler {
	return &FormHandler{
		formService: formService,
		jwtManager:  jwtManager,
	}
}

// CreateSession opens a new form session and returns its token
func (h *FormHandler) CreateSession(c *gin.Context) {
	session := h.formService.CreateSession()

	token, err := h.jwtManager.GenerateSessionToken(session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session created successfully", gin.H{
		"session_id": session.ID,
		"token":      token,
	})
}

// GetState returns the full form state for rendering
func (h *FormHandler) GetState(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	view, err := h.formService.State(*sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form state retrieved successfully", view)
}

// AddItem appends a blank line item to the order
func (h *FormHandler) AddItem(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	itemID, err := h.formService.AddItem(*sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", gin.H{"item_id": itemID})
}

// RemoveItem removes a line item from the order
func (h *FormHandler) RemoveItem(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	itemID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.formService.RemoveItem(*sessionID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateItem sets one field of a line item
func (h *FormHandler) UpdateItem(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	itemID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.formService.UpdateItem(*sessionID, itemID, entity.ItemField(req.Field), req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateMetadata sets one order metadata field
func (h *FormHandler) UpdateMetadata(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	var req request.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.formService.UpdateMetadata(*sessionID, entity.MetadataField(req.Field), req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Submit validates the order and records it through the gateway
func (h *FormHandler) Submit(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	result, err := h.formService.Submit(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Submitted {
		response.ValidationFailed(c, result.Errors)
		return
	}

	response.OK(c, "Purchase recorded successfully", result)
}

// Cancel discards the order. The confirmation dialog is the client's job;
// reaching this endpoint is the committed action.
func (h *FormHandler) Cancel(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not established")
		return
	}

	if err := h.formService.Cancel(*sessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase cancelled", nil)
}
