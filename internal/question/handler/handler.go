package handler

import (
	"net/http"

	"forms-server/internal/apierrors"
	"forms-server/internal/observability"
	"forms-server/internal/question/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.QuestionProcessor
	logger    *observability.Logger
}

func New(processor processor.QuestionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type CreateQuestionRequest struct {
	Type        string     `json:"type" binding:"required"`
	Text        string     `json:"text" binding:"required,max=1000"`
	Description *string    `json:"description,omitempty"`
	Required    bool       `json:"required"`
	MaxLength   *int       `json:"max_length,omitempty" binding:"omitempty,min=1"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Choices     []string   `json:"choices,omitempty"`
}

type UpdateQuestionRequest struct {
	Type        *string  `json:"type,omitempty"`
	Text        *string  `json:"text,omitempty" binding:"omitempty,max=1000"`
	Description *string  `json:"description,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	MaxLength   *int     `json:"max_length,omitempty" binding:"omitempty,min=1"`
	Choices     []string `json:"choices,omitempty"`
	Force       bool     `json:"force"`
}

type ChoiceRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

type ReplaceChoicesRequest struct {
	Choices []string `json:"choices" binding:"required"`
	Force   bool     `json:"force"`
}

type DeleteChoiceQuery struct {
	Force bool `form:"force"`
}

type ReorderChoicesRequest struct {
	ChoiceIDs []uuid.UUID `json:"choice_ids" binding:"required,min=1"`
}

func (h *Handler) HandleCreateQuestion(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.formRoute(c)
	if !ok {
		return
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	question, err := h.processor.CreateQuestion(ctx, route.userID, route.workspaceID, route.formID, processor.CreateQuestionParams{
		Type:        req.Type,
		Text:        req.Text,
		Description: req.Description,
		Required:    req.Required,
		MaxLength:   req.MaxLength,
		ParentID:    req.ParentID,
		Choices:     req.Choices,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *Handler) HandleUpdateQuestion(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.UpdateQuestion(ctx, route.userID, route.workspaceID, route.formID, route.questionID, processor.UpdateQuestionParams{
		Type:        req.Type,
		Text:        req.Text,
		Description: req.Description,
		Required:    req.Required,
		MaxLength:   req.MaxLength,
		Choices:     req.Choices,
		Force:       req.Force,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleDeleteQuestion(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteQuestion(ctx, route.userID, route.workspaceID, route.formID, route.questionID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleListChoices(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	choices, err := h.processor.ListChoices(ctx, route.userID, route.workspaceID, route.formID, route.questionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"choices": choices})
}

func (h *Handler) HandleCreateChoice(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	choice, err := h.processor.CreateChoice(ctx, route.userID, route.workspaceID, route.formID, route.questionID, req.Text)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, choice)
}

func (h *Handler) HandleUpdateChoice(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}
	choiceID, ok := parseIDParam(c, "choice_id", "choice")
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	choice, err := h.processor.UpdateChoice(ctx, route.userID, route.workspaceID, route.formID, route.questionID, choiceID, req.Text)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, choice)
}

// HandleDeleteChoice removes a choice. A choice still referenced by responses
// needs ?force=true, and the response then reports the dangling count.
func (h *Handler) HandleDeleteChoice(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}
	choiceID, ok := parseIDParam(c, "choice_id", "choice")
	if !ok {
		return
	}

	var query DeleteChoiceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	dangling, err := h.processor.DeleteChoice(ctx, route.userID, route.workspaceID, route.formID, route.questionID, choiceID, query.Force)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if dangling > 0 {
		c.JSON(http.StatusOK, gin.H{"dangling_responses": dangling})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleReorderChoices(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	var req ReorderChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	choices, err := h.processor.ReorderChoices(ctx, route.userID, route.workspaceID, route.formID, route.questionID, req.ChoiceIDs)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"choices": choices})
}

// HandleReplaceChoices swaps the whole choice list. Without force a list still
// referenced by responses is rejected with 409 and the reference count.
func (h *Handler) HandleReplaceChoices(c *gin.Context) {
	ctx := c.Request.Context()

	route, ok := h.questionRoute(c)
	if !ok {
		return
	}

	var req ReplaceChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.ReplaceChoices(ctx, route.userID, route.workspaceID, route.formID, route.questionID, req.Choices, req.Force)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type routeIDs struct {
	userID      uuid.UUID
	workspaceID uuid.UUID
	formID      uuid.UUID
	questionID  uuid.UUID
}

func (h *Handler) formRoute(c *gin.Context) (routeIDs, bool) {
	var ids routeIDs
	var ok bool
	if ids.userID, ok = h.getUserID(c); !ok {
		return ids, false
	}
	if ids.workspaceID, ok = parseIDParam(c, "workspace_id", "workspace"); !ok {
		return ids, false
	}
	if ids.formID, ok = parseIDParam(c, "form_id", "form"); !ok {
		return ids, false
	}
	return ids, true
}

func (h *Handler) questionRoute(c *gin.Context) (routeIDs, bool) {
	ids, ok := h.formRoute(c)
	if !ok {
		return ids, false
	}
	if ids.questionID, ok = parseIDParam(c, "question_id", "question"); !ok {
		return ids, false
	}
	return ids, true
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
