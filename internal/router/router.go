package router

import (
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/handler"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps everything the route tree needs
type Deps struct {
	AuthLogic *logic.AuthLogic
	Redis     *redis.Client

	AuthHandler      *handler.AuthHandler
	DraftHandler     *handler.DraftHandler
	ProjectHandler   *handler.ProjectHandler
	MilestoneHandler *handler.MilestoneHandler
	PaymentHandler   *handler.PaymentHandler
	TeamHandler      *handler.TeamHandler
	ChatHandler      *handler.ChatHandler
	AIHandler        *handler.AIHandler
	EmailHandler     *handler.EmailHandler

	UploadsDir string
	FilesPath  string
}

func Setup(deps *Deps) *gin.Engine {
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "linkup-api",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// uploaded attachments
	r.Static(deps.FilesPath, deps.UploadsDir)

	auth := middleware.Auth(deps.AuthLogic)
	admin := middleware.AdminOnly()
	authLimit := middleware.RateLimit(deps.Redis, "auth", 20, time.Minute)
	aiLimit := middleware.RateLimit(deps.Redis, "ai", 30, time.Minute)

	v1 := r.Group("/api/v1")
	{
		// accounts
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authLimit, deps.AuthHandler.Register)
			authGroup.POST("/login", authLimit, deps.AuthHandler.Login)
			authGroup.GET("/me", auth, deps.AuthHandler.Me)
		}

		// anonymous intake drafts
		drafts := v1.Group("/drafts")
		{
			drafts.POST("", deps.DraftHandler.SaveDraft)
			drafts.POST("/claim", auth, deps.DraftHandler.ClaimDraft)
		}

		// projects and milestones
		projects := v1.Group("/projects", auth)
		{
			projects.POST("", deps.ProjectHandler.CreateProject)
			projects.GET("", deps.ProjectHandler.GetProjects)
			projects.GET("/:id", deps.ProjectHandler.GetProject)
			projects.PUT("/:id", deps.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", deps.ProjectHandler.CancelProject)
			projects.GET("/:id/stats", deps.ProjectHandler.GetProjectStats)
			projects.GET("/:id/milestones", deps.MilestoneHandler.GetProjectMilestones)
			projects.GET("/:id/payments", deps.PaymentHandler.ListProjectPayments)
			projects.GET("/:id/matches", deps.TeamHandler.MatchTeams)
			projects.GET("/:id/insights", aiLimit, deps.AIHandler.ProjectInsights)
			projects.POST("/:id/messages", deps.ChatHandler.PostMessage)
			projects.GET("/:id/messages", deps.ChatHandler.GetMessages)
		}

		files := v1.Group("/files", auth)
		{
			files.POST("", deps.ProjectHandler.UploadFile)
			files.POST("/:id/summary", aiLimit, deps.AIHandler.SummarizeFile)
		}

		milestones := v1.Group("/milestones", auth)
		{
			milestones.POST("/:id/start", deps.MilestoneHandler.StartWork)
			milestones.POST("/:id/submit", deps.MilestoneHandler.SubmitDeliverable)
			milestones.POST("/:id/release", deps.MilestoneHandler.Release)
		}

		// payments
		payments := v1.Group("/payments")
		{
			payments.POST("/intents", auth, deps.PaymentHandler.CreateFundingIntent)
			payments.POST("/validate/card", auth, deps.PaymentHandler.ValidateCard)
			payments.POST("/validate/bank", auth, deps.PaymentHandler.ValidateBank)
			// provider webhook, authenticated by signature not token
			payments.POST("/webhook", deps.PaymentHandler.Webhook)
		}

		// teams and invitations
		teams := v1.Group("/teams", auth)
		{
			teams.POST("", deps.TeamHandler.CreateTeam)
			teams.GET("", deps.TeamHandler.GetTeams)
			teams.GET("/:id", deps.TeamHandler.GetTeam)
			teams.PUT("/:id", deps.TeamHandler.UpdateTeam)
			teams.POST("/:id/members", deps.TeamHandler.AddMember)
			teams.POST("/:id/bio", aiLimit, deps.AIHandler.GenerateBio)
		}

		invitations := v1.Group("/invitations", auth)
		{
			invitations.POST("", deps.TeamHandler.Invite)
			invitations.GET("", deps.TeamHandler.ListInvitations)
			invitations.POST("/:id/respond", deps.TeamHandler.RespondInvitation)
		}

		// assistant
		assistant := v1.Group("/assistant", auth, aiLimit)
		{
			assistant.POST("/chat", deps.AIHandler.Chat)
			assistant.GET("/checklist", deps.AIHandler.OnboardingChecklist)
		}

		// admin console
		adminGroup := v1.Group("/admin", auth, admin)
		{
			adminGroup.GET("/stats", deps.ProjectHandler.GetAllProjectStats)
			adminGroup.POST("/campaigns", deps.EmailHandler.CreateCampaign)
			adminGroup.GET("/campaigns", deps.EmailHandler.GetCampaigns)
			adminGroup.POST("/campaigns/:id/broadcast", deps.EmailHandler.Broadcast)
			adminGroup.GET("/campaigns/:id/logs", deps.EmailHandler.GetCampaignLogs)
			adminGroup.POST("/emails", deps.EmailHandler.SendSingle)
		}
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Provider-Signature")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
