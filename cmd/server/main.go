package main

import (
	"github.com/alphadeveloper12/Link-Up-sub000/internal/ai"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/database"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/handler"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/notify"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/redisclient"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/router"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/storage"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	rdb, err := redisclient.Init(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize redis: %v", err)
	}

	publisher, err := mq.NewPublisher(cfg.Queue.URL)
	if err != nil {
		logger.Fatal("Failed to initialize queue publisher: %v", err)
	}
	defer publisher.Close()

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize file storage: %v", err)
	}

	payClient := payment.NewClient(cfg.Payment)
	aiClient := ai.NewClient(cfg.AI)
	sender := notify.NewEmailSender(cfg.Email)

	// business logic
	authLogic := logic.NewAuthLogic(db, cfg.Auth)
	draftLogic := logic.NewDraftLogic(logic.NewRedisDraftStore(rdb), cfg.Auth)
	projectLogic, err := logic.NewProjectLogic(db, cfg.Escrow.MilestoneSplit)
	if err != nil {
		logger.Fatal("Invalid milestone split: %v", err)
	}
	milestoneLogic := logic.NewMilestoneLogic(db, payClient, cfg.Payment.Currency)
	paymentLogic := logic.NewPaymentLogic(db, payClient, milestoneLogic, cfg.Payment.Currency)
	teamLogic := logic.NewTeamLogic(db)
	chatLogic := logic.NewChatLogic(db, publisher)
	aiLogic := logic.NewAILogic(db, aiClient)
	emailLogic := logic.NewEmailLogic(db, publisher, cfg.Email.PoolSize)

	// queue consumers
	notifyService := notify.NewService(db, sender, emailLogic)
	if err := notifyService.Start(cfg.Queue.URL); err != nil {
		logger.Fatal("Failed to start queue consumers: %v", err)
	}
	defer notifyService.Stop()

	// background jobs
	taskManager := task.Start(cfg, db, paymentLogic, milestoneLogic, emailLogic, publisher)
	defer taskManager.Stop()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(&router.Deps{
		AuthLogic: authLogic,
		Redis:     rdb,

		AuthHandler:      handler.NewAuthHandler(authLogic),
		DraftHandler:     handler.NewDraftHandler(draftLogic),
		ProjectHandler:   handler.NewProjectHandler(projectLogic, draftLogic, store),
		MilestoneHandler: handler.NewMilestoneHandler(milestoneLogic, projectLogic),
		PaymentHandler:   handler.NewPaymentHandler(paymentLogic, cfg.Payment.WebhookSecret),
		TeamHandler:      handler.NewTeamHandler(teamLogic, projectLogic),
		ChatHandler:      handler.NewChatHandler(chatLogic),
		AIHandler:        handler.NewAIHandler(aiLogic, projectLogic, store),
		EmailHandler:     handler.NewEmailHandler(emailLogic),

		UploadsDir: store.Dir(),
		FilesPath:  cfg.Storage.PublicBaseURL,
	})

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
