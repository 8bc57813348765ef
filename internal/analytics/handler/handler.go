package handler

import (
	"fmt"
	"net/http"

	"forms-server/internal/analytics/processor"
	"forms-server/internal/apierrors"
	"forms-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.AnalyticsProcessor
	logger    *observability.Logger
}

func New(processor processor.AnalyticsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetFormAnalytics returns the form summary and per-question analytics
func (h *Handler) HandleGetFormAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	result, err := h.processor.GetFormAnalytics(ctx, userID, workspaceID, formID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleGetQuestionAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "question_id", "question")
	if !ok {
		return
	}

	analytics, err := h.processor.GetQuestionAnalytics(ctx, userID, workspaceID, formID, questionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// HandleExport streams the form's submissions as a csv or json download
func (h *Handler) HandleExport(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	file, err := h.processor.Export(ctx, userID, workspaceID, formID, c.DefaultQuery("format", processor.ExportFormatCSV))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) formRoute(c *gin.Context) (userID, workspaceID, formID uuid.UUID, ok bool) {
	if userID, ok = h.getUserID(c); !ok {
		return
	}
	if workspaceID, ok = parseIDParam(c, "workspace_id", "workspace"); !ok {
		return
	}
	formID, ok = parseIDParam(c, "form_id", "form")
	return
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

func parseIDParam(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid "+resource+" ID format"))
		return uuid.UUID{}, false
	}
	return id, true
}
