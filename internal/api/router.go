package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/phenixmation/payables/internal/api/v1"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/rest/middleware"
	"github.com/phenixmation/payables/internal/sentry"
	"github.com/phenixmation/payables/internal/session"
	"github.com/phenixmation/payables/internal/types"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Auth    *v1.AuthHandler
	Invoice *v1.InvoiceHandler
	Draft   *v1.DraftHandler
	User    *v1.UserHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentrySvc *sentry.Service,
	session *session.Session,
) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(cfg, logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)

	v1Router := router.Group("/v1")

	// Routes usable without a session
	auth := v1Router.Group("/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/session", handlers.Auth.Session)
	}

	private := v1Router.Group("/", middleware.RequireSession(session))

	invoices := private.Group("/factures")
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/search", handlers.Invoice.SearchInvoices)
		invoices.GET("/:numero", handlers.Invoice.GetInvoice)
		invoices.GET("/:numero/pdf", handlers.Invoice.GetInvoicePDF)
		invoices.POST("/:numero/draft", handlers.Draft.EditDraft)
	}

	drafts := private.Group("/drafts")
	{
		drafts.POST("", handlers.Draft.NewDraft)
		drafts.GET("/:id", handlers.Draft.GetDraft)
		drafts.PATCH("/:id", handlers.Draft.UpdateDraft)
		drafts.DELETE("/:id", handlers.Draft.DiscardDraft)
		drafts.POST("/:id/lines", handlers.Draft.AddLine)
		drafts.PATCH("/:id/lines/:index", handlers.Draft.UpdateLine)
		drafts.DELETE("/:id/lines/:index", handlers.Draft.RemoveLine)
		drafts.POST("/:id/submit", handlers.Draft.SubmitDraft)
	}

	private.GET("/utilisateurs", handlers.User.ListUsers)

	return router
}
