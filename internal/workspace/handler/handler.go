package handler

import (
	"net/http"
	"strconv"

	"forms-server/internal/apierrors"
	"forms-server/internal/observability"
	"forms-server/internal/workspace/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.WorkspaceProcessor
	logger    *observability.Logger
}

func New(processor processor.WorkspaceProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type CreateWorkspaceRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=255"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=private public"`
}

type UpdateWorkspaceRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Visibility *string `json:"visibility,omitempty" binding:"omitempty,oneof=private public"`
}

// HandleCreateWorkspace creates a workspace owned by the caller
func (h *Handler) HandleCreateWorkspace(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	workspace, err := h.processor.CreateWorkspace(ctx, userID, processor.CreateWorkspaceParams{
		Name:       req.Name,
		Visibility: req.Visibility,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, workspace)
}

// HandleListWorkspaces lists the caller's workspaces and all public ones
func (h *Handler) HandleListWorkspaces(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	params := processor.ListWorkspacesParams{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if visibility := c.Query("visibility"); visibility != "" {
		params.Visibility = &visibility
	}
	if name := c.Query("name"); name != "" {
		params.Name = &name
	}

	result, err := h.processor.ListWorkspaces(ctx, userID, params)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": result.Workspaces,
		"pagination": gin.H{
			"total_count": result.TotalCount,
			"page":        result.Page,
			"page_size":   result.Limit,
			"total_pages": result.TotalPages,
		},
	})
}

func (h *Handler) HandleGetWorkspace(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := h.getWorkspaceID(c)
	if !ok {
		return
	}

	workspace, err := h.processor.GetWorkspace(ctx, userID, workspaceID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, workspace)
}

func (h *Handler) HandleUpdateWorkspace(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := h.getWorkspaceID(c)
	if !ok {
		return
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	workspace, err := h.processor.UpdateWorkspace(ctx, userID, workspaceID, processor.UpdateWorkspaceParams{
		Name:       req.Name,
		Visibility: req.Visibility,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, workspace)
}

func (h *Handler) HandleDeleteWorkspace(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := h.getWorkspaceID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteWorkspace(ctx, userID, workspaceID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get("User-ID")
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return uuid.UUID{}, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid user ID in token"))
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getWorkspaceID(c *gin.Context) (uuid.UUID, bool) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid workspace ID format"))
		return uuid.UUID{}, false
	}
	return workspaceID, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
