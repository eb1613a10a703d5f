package task

import (
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// CampaignDispatchJob broadcasts email campaigns whose scheduled time has
// passed.
type CampaignDispatchJob struct {
	config     *config.Config
	emailLogic *logic.EmailLogic
}

func NewCampaignDispatchJob(cfg *config.Config, emailLogic *logic.EmailLogic) *CampaignDispatchJob {
	return &CampaignDispatchJob{
		config:     cfg,
		emailLogic: emailLogic,
	}
}

func (j *CampaignDispatchJob) GetName() string {
	return "campaign_dispatcher"
}

func (j *CampaignDispatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

func (j *CampaignDispatchJob) Execute() {
	logger.Info("Starting campaign dispatch task")

	dispatched, err := j.emailLogic.DispatchDue()
	if err != nil {
		logger.Error("Campaign dispatch failed: %v", err)
		return
	}

	logger.Info("Campaign dispatch task completed. Dispatched %d campaigns", dispatched)
}
