package task

import (
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// TaskManager owns the background job scheduler.
type TaskManager struct {
	scheduler gocron.Scheduler
	config    *config.Config
	db        *gorm.DB

	paymentLogic   *logic.PaymentLogic
	milestoneLogic *logic.MilestoneLogic
	emailLogic     *logic.EmailLogic
	publisher      *mq.Publisher
}

// NewTaskManager creates a task manager over a fresh scheduler.
func NewTaskManager(cfg *config.Config, db *gorm.DB, paymentLogic *logic.PaymentLogic, milestoneLogic *logic.MilestoneLogic, emailLogic *logic.EmailLogic, publisher *mq.Publisher) *TaskManager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &TaskManager{
		scheduler:      s,
		config:         cfg,
		db:             db,
		paymentLogic:   paymentLogic,
		milestoneLogic: milestoneLogic,
		emailLogic:     emailLogic,
		publisher:      publisher,
	}
}

// Start registers all jobs and runs the scheduler.
func Start(cfg *config.Config, db *gorm.DB, paymentLogic *logic.PaymentLogic, milestoneLogic *logic.MilestoneLogic, emailLogic *logic.EmailLogic, publisher *mq.Publisher) *TaskManager {
	manager := NewTaskManager(cfg, db, paymentLogic, milestoneLogic, emailLogic, publisher)
	manager.RegisterJobs()
	manager.scheduler.Start()
	logger.Info("Task manager started successfully")
	return manager
}

// Job one scheduled background job
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// RegisterJobs registers every background job.
func (m *TaskManager) RegisterJobs() {
	m.register(NewPaymentReconcileJob(m.config, m.paymentLogic))
	m.register(NewMilestoneReminderJob(m.config, m.db, m.milestoneLogic, m.publisher))
	m.register(NewCampaignDispatchJob(m.config, m.emailLogic))
}

func (m *TaskManager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop shuts the scheduler down.
func (m *TaskManager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
