package handler

import (
	"context"
	"net/http"
	"strconv"

	"forms-server/internal/apierrors"
	formProcessor "forms-server/internal/form/processor"
	"forms-server/internal/observability"
	"forms-server/internal/store"
	"forms-server/internal/submission/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FormResolver finds a form from the workspace and form references of a public URL
type FormResolver interface {
	ResolveForm(ctx context.Context, userID uuid.UUID, workspaceRef, formRef string) (formProcessor.FormDetail, error)
}

type Handler struct {
	processor processor.SubmissionProcessor
	forms     FormResolver
	logger    *observability.Logger
}

func New(processor processor.SubmissionProcessor, forms FormResolver, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		forms:     forms,
		logger:    logger,
	}
}

type StartSubmissionRequest struct {
	Email    string                 `json:"email" binding:"required,email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type CompleteSubmissionRequest struct {
	Answers        []processor.Answer `json:"answers"`
	CompletionTime *int               `json:"completion_time,omitempty" binding:"omitempty,min=0"`
}

// HandleStartSubmission starts or resumes the respondent's submission.
// Authentication is optional.
func (h *Handler) HandleStartSubmission(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "workspace_id", "workspace")
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "form_id", "form")
	if !ok {
		return
	}
	h.start(c, workspaceID, formID)
}

// HandleStartPublicSubmission starts a submission on a form addressed by slug
func (h *Handler) HandleStartPublicSubmission(c *gin.Context) {
	form, ok := h.resolvePublicForm(c)
	if !ok {
		return
	}
	h.start(c, form.WorkspaceID, form.ID)
}

func (h *Handler) start(c *gin.Context, workspaceID, formID uuid.UUID) {
	ctx := c.Request.Context()

	var req StartSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.Start(ctx, optionalUserID(c), workspaceID, formID, processor.StartParams{
		Email:    req.Email,
		Metadata: requestMetadata(c, req.Metadata),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result.Submission)
}

// HandleCompleteSubmission validates and stores the answers of a submission.
// Authentication is optional.
func (h *Handler) HandleCompleteSubmission(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "workspace_id", "workspace")
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "form_id", "form")
	if !ok {
		return
	}
	h.complete(c, workspaceID, formID)
}

func (h *Handler) HandleCompletePublicSubmission(c *gin.Context) {
	form, ok := h.resolvePublicForm(c)
	if !ok {
		return
	}
	h.complete(c, form.WorkspaceID, form.ID)
}

func (h *Handler) complete(c *gin.Context, workspaceID, formID uuid.UUID) {
	ctx := c.Request.Context()

	submissionID, ok := parseIDParam(c, "submission_id", "submission")
	if !ok {
		return
	}

	var req CompleteSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	submission, err := h.processor.Complete(ctx, optionalUserID(c), workspaceID, formID, submissionID, processor.CompleteParams{
		Answers:        req.Answers,
		CompletionTime: req.CompletionTime,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *Handler) HandleListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}

	params := processor.ListParams{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if status := c.Query("status"); status != "" {
		params.Status = &status
	}

	result, err := h.processor.List(ctx, userID, workspaceID, formID, params)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": result.Submissions,
		"pagination": gin.H{
			"total_count": result.TotalCount,
			"page":        result.Page,
			"page_size":   result.Limit,
			"total_pages": result.TotalPages,
		},
	})
}

func (h *Handler) HandleGetSubmission(c *gin.Context) {
	ctx := c.Request.Context()

	userID, workspaceID, formID, ok := h.formRoute(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "submission_id", "submission")
	if !ok {
		return
	}

	submission, err := h.processor.Get(ctx, userID, workspaceID, formID, submissionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *Handler) resolvePublicForm(c *gin.Context) (formProcessor.FormDetail, bool) {
	form, err := h.forms.ResolveForm(c.Request.Context(), optionalUserID(c), c.Param("workspace_slug"), c.Param("form_slug"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return formProcessor.FormDetail{}, false
	}
	return form, true
}

// requestMetadata merges client supplied metadata with what the server
// observes about the request. Server values win.
func requestMetadata(c *gin.Context, client map[string]interface{}) store.JSONB {
	metadata := store.JSONB{}
	for k, v := range client {
		metadata[k] = v
	}
	metadata["user_agent"] = observability.GetRealUserAgent(c)
	metadata["ip_address"] = observability.GetRealClientIP(c)
	metadata["device_type"] = observability.GetDeviceType(c)
	metadata["device_os"] = observability.GetDeviceOS(c)
	return metadata
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

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
