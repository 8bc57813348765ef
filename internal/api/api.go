package api

import (
	"net/http"

	analyticsHandler "forms-server/internal/analytics/handler"
	authHandler "forms-server/internal/auth/handler"
	formHandler "forms-server/internal/form/handler"
	questionHandler "forms-server/internal/question/handler"
	submissionHandler "forms-server/internal/submission/handler"
	workspaceHandler "forms-server/internal/workspace/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router            *gin.RouterGroup
	authHandler       authHandler.Handler
	workspaceHandler  workspaceHandler.Handler
	formHandler       formHandler.Handler
	questionHandler   questionHandler.Handler
	submissionHandler submissionHandler.Handler
	analyticsHandler  analyticsHandler.Handler
	publicRateLimit   gin.HandlerFunc
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	workspaceHandler workspaceHandler.Handler,
	formHandler formHandler.Handler,
	questionHandler questionHandler.Handler,
	submissionHandler submissionHandler.Handler,
	analyticsHandler analyticsHandler.Handler,
	publicRateLimit gin.HandlerFunc,
) API {
	return API{
		router:            router,
		authHandler:       authHandler,
		workspaceHandler:  workspaceHandler,
		formHandler:       formHandler,
		questionHandler:   questionHandler,
		submissionHandler: submissionHandler,
		analyticsHandler:  analyticsHandler,
		publicRateLimit:   publicRateLimit,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/register", a.authHandler.HandleRegister)
		authGroup.POST("/login", a.authHandler.HandleLogin)
		authGroup.POST("/google", a.authHandler.HandleGoogleLogin)
		authGroup.POST("/logout", a.authHandler.HandleLogout)
		authGroup.GET("/profile", a.authHandler.HandleJWTMiddleware, a.authHandler.HandleGetProfile)
	}

	// Anonymous access by slug
	publicGroup := apiGroup.Group("/public/:workspace_slug/:form_slug", a.authHandler.HandleOptionalAuth)
	{
		publicGroup.GET("", a.formHandler.HandleGetPublicForm)
		publicGroup.POST("/submissions/start", a.publicRateLimit, a.submissionHandler.HandleStartPublicSubmission)
		publicGroup.POST("/submissions/:submission_id/complete", a.publicRateLimit, a.submissionHandler.HandleCompletePublicSubmission)
	}

	// Respondents of public forms need no account
	respondGroup := apiGroup.Group("/workspaces/:workspace_id/forms/:form_id/submissions", a.authHandler.HandleOptionalAuth, a.publicRateLimit)
	{
		respondGroup.POST("/start", a.submissionHandler.HandleStartSubmission)
		respondGroup.POST("/:submission_id/complete", a.submissionHandler.HandleCompleteSubmission)
	}

	protectedGroup := apiGroup.Group("/workspaces", a.authHandler.HandleJWTMiddleware)
	{
		protectedGroup.POST("", a.workspaceHandler.HandleCreateWorkspace)
		protectedGroup.GET("", a.workspaceHandler.HandleListWorkspaces)
		protectedGroup.GET("/:workspace_id", a.workspaceHandler.HandleGetWorkspace)
		protectedGroup.PUT("/:workspace_id", a.workspaceHandler.HandleUpdateWorkspace)
		protectedGroup.DELETE("/:workspace_id", a.workspaceHandler.HandleDeleteWorkspace)

		forms := protectedGroup.Group("/:workspace_id/forms")
		forms.GET("", a.formHandler.HandleListForms)
		forms.POST("", a.formHandler.HandleCreateForm)
		forms.GET("/:form_id", a.formHandler.HandleGetForm)
		forms.PUT("/:form_id", a.formHandler.HandleUpdateForm)
		forms.DELETE("/:form_id", a.formHandler.HandleDeleteForm)
		forms.GET("/:form_id/settings", a.formHandler.HandleGetSettings)
		forms.PUT("/:form_id/settings", a.formHandler.HandleUpdateSettings)

		questions := forms.Group("/:form_id/questions")
		questions.POST("", a.questionHandler.HandleCreateQuestion)
		questions.PUT("/reorder", a.formHandler.HandleReorderQuestions)
		questions.PUT("/:question_id", a.questionHandler.HandleUpdateQuestion)
		questions.DELETE("/:question_id", a.questionHandler.HandleDeleteQuestion)
		questions.PUT("/:question_id/move", a.formHandler.HandleMoveQuestion)
		questions.GET("/:question_id/analytics", a.analyticsHandler.HandleGetQuestionAnalytics)

		choices := questions.Group("/:question_id/choices")
		choices.GET("", a.questionHandler.HandleListChoices)
		choices.POST("", a.questionHandler.HandleCreateChoice)
		choices.PUT("", a.questionHandler.HandleReplaceChoices)
		choices.PUT("/reorder", a.questionHandler.HandleReorderChoices)
		choices.PUT("/:choice_id", a.questionHandler.HandleUpdateChoice)
		choices.DELETE("/:choice_id", a.questionHandler.HandleDeleteChoice)

		forms.GET("/:form_id/submissions", a.submissionHandler.HandleListSubmissions)
		forms.GET("/:form_id/submissions/:submission_id", a.submissionHandler.HandleGetSubmission)

		forms.GET("/:form_id/analytics", a.analyticsHandler.HandleGetFormAnalytics)
		forms.GET("/:form_id/analytics/export", a.analyticsHandler.HandleExport)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
