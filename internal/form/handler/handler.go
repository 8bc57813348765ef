package handler

import (
	"net/http"

	"forms-server/internal/apierrors"
	"forms-server/internal/form/processor"
	"forms-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.FormProcessor
	logger    *observability.Logger
}

func New(processor processor.FormProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type CreateFormRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsPrivate   bool    `json:"is_private"`
}

type UpdateFormRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

type UpdateSettingsRequest struct {
	LandingTitle       *string `json:"landing_title,omitempty" binding:"omitempty,max=255"`
	LandingDescription *string `json:"landing_description,omitempty"`
	EndingTitle        *string `json:"ending_title,omitempty" binding:"omitempty,max=255"`
	EndingDescription  *string `json:"ending_description,omitempty"`
	ShowProgressBar    *bool   `json:"show_progress_bar,omitempty"`
	RedirectURL        *string `json:"redirect_url,omitempty"`
}

type QuestionPlacementRequest struct {
	ID       uuid.UUID  `json:"id" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
	Order    int        `json:"order" binding:"required,min=1"`
}

type ReorderQuestionsRequest struct {
	Questions []QuestionPlacementRequest `json:"questions" binding:"required,min=1,dive"`
}

type MoveQuestionRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

func (h *Handler) HandleCreateForm(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "workspace_id", "workspace")
	if !ok {
		return
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	form, err := h.processor.CreateForm(ctx, userID, workspaceID, processor.CreateFormParams{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *Handler) HandleListForms(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "workspace_id", "workspace")
	if !ok {
		return
	}

	forms, err := h.processor.ListForms(ctx, userID, workspaceID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

func (h *Handler) HandleGetForm(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	form, err := h.processor.GetForm(ctx, userID, workspaceID, formID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// HandleGetPublicForm resolves a form by workspace and form slug (or name).
// Authentication is optional; owners can also open their private forms here.
func (h *Handler) HandleGetPublicForm(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := h.processor.ResolveForm(ctx, optionalUserID(c), c.Param("workspace_slug"), c.Param("form_slug"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *Handler) HandleUpdateForm(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	form, err := h.processor.UpdateForm(ctx, userID, workspaceID, formID, processor.UpdateFormParams{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *Handler) HandleDeleteForm(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteForm(ctx, userID, workspaceID, formID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleGetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	settings, err := h.processor.GetSettings(ctx, userID, workspaceID, formID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) HandleUpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	settings, err := h.processor.UpdateSettings(ctx, userID, workspaceID, formID, processor.UpdateSettingsParams{
		LandingTitle:       req.LandingTitle,
		LandingDescription: req.LandingDescription,
		EndingTitle:        req.EndingTitle,
		EndingDescription:  req.EndingDescription,
		ShowProgressBar:    req.ShowProgressBar,
		RedirectURL:        req.RedirectURL,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) HandleReorderQuestions(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	var req ReorderQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	placements := make([]processor.QuestionPlacement, len(req.Questions))
	for i, q := range req.Questions {
		placements[i] = processor.QuestionPlacement{ID: q.ID, ParentID: q.ParentID, Order: q.Order}
	}

	questions, err := h.processor.ReorderQuestions(ctx, userID, workspaceID, formID, placements)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *Handler) HandleMoveQuestion(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "question_id", "question")
	if !ok {
		return
	}

	var req MoveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	questions, err := h.processor.MoveQuestion(ctx, userID, workspaceID, formID, questionID, req.ParentID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// formRoute reads the caller and the workspace and form ids of a form-scoped route
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

// optionalUserID returns uuid.Nil for anonymous callers
func optionalUserID(c *gin.Context) uuid.UUID {
	userIDStr, exists := c.Get("User-ID")
	if !exists {
		return uuid.Nil
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil
	}
	return userID
}

func parseIDParam(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid "+resource+" ID format"))
		return uuid.UUID{}, false
	}
	return id, true
}
