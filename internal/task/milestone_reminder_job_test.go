package task

import (
	"fmt"
	"testing"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/database"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type recordingPublisher struct {
	keys     []string
	payloads []mq.NotificationPayload
}

func (r *recordingPublisher) Publish(routingKey string, payload any) error {
	r.keys = append(r.keys, routingKey)
	if n, ok := payload.(mq.NotificationPayload); ok {
		r.payloads = append(r.payloads, n)
	}
	return nil
}

func taskTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestReminderJobNotifiesProjectOwners(t *testing.T) {
	db := taskTestDB(t)

	owner := &model.UserModel{Email: "client@example.com", PasswordHash: "x", Name: "Client", Role: model.UserRoleClient}
	require.NoError(t, db.Create(owner).Error)

	project := &model.ProjectModel{
		Title:        "Mobile app build",
		Description:  "Cross-platform app with backend",
		UserId:       owner.Id,
		BudgetAmount: 500000,
		Currency:     "usd",
		Status:       model.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)

	soon := time.Now().Add(24 * time.Hour)
	due := &model.ProjectMilestoneModel{
		ProjectId:  project.Id,
		OrderIndex: 0,
		Title:      "Milestone 1",
		Percentage: 30,
		Amount:     150000,
		Status:     model.EscrowStatusPendingSubmission,
		DueDate:    &soon,
	}
	require.NoError(t, db.Create(due).Error)

	farOut := time.Now().Add(30 * 24 * time.Hour)
	notDue := &model.ProjectMilestoneModel{
		ProjectId:  project.Id,
		OrderIndex: 1,
		Title:      "Milestone 2",
		Percentage: 40,
		Amount:     200000,
		Status:     model.EscrowStatusFunded,
		DueDate:    &farOut,
	}
	require.NoError(t, db.Create(notDue).Error)

	payClient := payment.NewClient(config.PaymentConfig{BaseURL: "http://127.0.0.1:1"})
	milestoneLogic := logic.NewMilestoneLogic(db, payClient, "usd")

	pub := &recordingPublisher{}
	job := NewMilestoneReminderJob(&config.Config{}, db, milestoneLogic, pub)
	job.Execute()

	require.Len(t, pub.payloads, 1, "one reminder per due milestone")
	assert.Equal(t, []string{mq.RoutingKeyNotification}, pub.keys)
	assert.Equal(t, owner.Id, pub.payloads[0].UserId)
	assert.Equal(t, project.Id, pub.payloads[0].ProjectId)
	assert.Equal(t, "milestone_due", pub.payloads[0].Kind)
	assert.Contains(t, pub.payloads[0].Message, "Milestone 1")
}
