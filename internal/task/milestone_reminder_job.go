package task

import (
	"fmt"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// notificationPublisher is satisfied by mq.Publisher.
type notificationPublisher interface {
	Publish(routingKey string, payload any) error
}

// MilestoneReminderJob reminds project owners about milestones with a due
// date inside the window, via the notification queue.
type MilestoneReminderJob struct {
	config         *config.Config
	db             *gorm.DB
	milestoneLogic *logic.MilestoneLogic
	publisher      notificationPublisher
}

func NewMilestoneReminderJob(cfg *config.Config, db *gorm.DB, milestoneLogic *logic.MilestoneLogic, publisher notificationPublisher) *MilestoneReminderJob {
	return &MilestoneReminderJob{
		config:         cfg,
		db:             db,
		milestoneLogic: milestoneLogic,
		publisher:      publisher,
	}
}

func (j *MilestoneReminderJob) GetName() string {
	return "milestone_reminder"
}

func (j *MilestoneReminderJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Hour)
}

func (j *MilestoneReminderJob) Execute() {
	logger.Info("Starting milestone reminder task")

	milestones, err := j.milestoneLogic.DueSoon(72 * time.Hour)
	if err != nil {
		logger.Error("Failed to fetch due milestones: %v", err)
		return
	}

	for _, m := range milestones {
		logger.Warn("Milestone %d (project %d, %s) is due %s",
			m.Id, m.ProjectId, m.Status, m.DueDate.Format(time.RFC3339))
		j.notifyOwner(&m)
	}

	logger.Info("Milestone reminder task completed. %d milestones due soon", len(milestones))
}

// notifyOwner enqueues a reminder for the project owner; the queue consumer
// turns it into an email.
func (j *MilestoneReminderJob) notifyOwner(m *model.ProjectMilestoneModel) {
	if j.publisher == nil {
		return
	}

	var project model.ProjectModel
	if err := j.db.First(&project, m.ProjectId).Error; err != nil {
		logger.Error("Failed to load project %d for milestone reminder: %v", m.ProjectId, err)
		return
	}

	payload := mq.NotificationPayload{
		UserId:    project.UserId,
		ProjectId: m.ProjectId,
		Kind:      "milestone_due",
		Message: fmt.Sprintf("Milestone %q on %q is due %s",
			m.Title, project.Title, m.DueDate.Format("Jan 2")),
		CreatedAt: time.Now(),
	}
	if err := j.publisher.Publish(mq.RoutingKeyNotification, payload); err != nil {
		logger.Error("Failed to publish reminder for milestone %d: %v", m.Id, err)
	}
}
