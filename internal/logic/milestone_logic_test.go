package logic

import (
	"context"
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// unreachablePayClient fails fast on any provider call.
func unreachablePayClient() *payment.Client {
	return payment.NewClient(config.PaymentConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "sk_test",
	})
}

func firstMilestone(t *testing.T, db *gorm.DB, projectId int64) *model.ProjectMilestoneModel {
	t.Helper()
	var m model.ProjectMilestoneModel
	require.NoError(t, db.Where("project_id = ?", projectId).Order("order_index ASC").First(&m).Error)
	return &m
}

func setMilestoneStatus(t *testing.T, db *gorm.DB, id int64, status model.EscrowStatus) {
	t.Helper()
	require.NoError(t, db.Model(&model.ProjectMilestoneModel{}).
		Where("id = ?", id).Update("status", status).Error)
}

func seedSucceededFunding(t *testing.T, db *gorm.DB, m *model.ProjectMilestoneModel) {
	t.Helper()
	require.NoError(t, db.Create(&model.PaymentRecordModel{
		ProjectId:      m.ProjectId,
		MilestoneId:    m.Id,
		Kind:           model.PaymentKindFunding,
		Amount:         m.Amount,
		Currency:       "usd",
		Status:         model.PaymentStatusSucceeded,
		IdempotencyKey: "fund-" + t.Name(),
	}).Error)
}

func TestMarkFundedOnlyFromCreated(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	require.NoError(t, logic.MarkFunded(m.Id))

	// second funding event hits funded state and is refused
	assert.ErrorIs(t, logic.MarkFunded(m.Id), ErrInvalidTransition)
}

func TestStartWorkRequiresTeam(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	setMilestoneStatus(t, db, m.Id, model.EscrowStatusFunded)

	err := logic.StartWork(m.Id, client.Id)
	assert.ErrorIs(t, err, ErrConflict)

	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)

	require.NoError(t, logic.StartWork(m.Id, client.Id))

	updated := firstMilestone(t, db, project.Id)
	assert.Equal(t, model.EscrowStatusPendingSubmission, updated.Status)
}

func TestSubmitDeliverableOnlyTeamOwner(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	stranger := seedUser(t, db, "other@example.com", model.UserRoleFreelancer)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	setMilestoneStatus(t, db, m.Id, model.EscrowStatusPendingSubmission)

	assert.ErrorIs(t, logic.SubmitDeliverable(m.Id, stranger.Id), ErrForbidden)
	assert.ErrorIs(t, logic.SubmitDeliverable(m.Id, client.Id), ErrForbidden)

	require.NoError(t, logic.SubmitDeliverable(m.Id, freelancer.Id))
	updated := firstMilestone(t, db, project.Id)
	assert.Equal(t, model.EscrowStatusPendingApproval, updated.Status)
	assert.NotNil(t, updated.SubmittedAt)
}

func TestReleaseRefusedBeforeApprovalStage(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	for _, status := range []model.EscrowStatus{
		model.EscrowStatusCreated,
		model.EscrowStatusFunded,
		model.EscrowStatusPendingSubmission,
	} {
		setMilestoneStatus(t, db, m.Id, status)
		_, err := logic.Release(context.Background(), m.Id, client.Id)
		assert.ErrorIs(t, err, ErrInvalidTransition, "release from %s must be refused", status)
	}
}

func TestReleaseRequiresConfirmedFunding(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	setMilestoneStatus(t, db, m.Id, model.EscrowStatusPendingApproval)

	// no succeeded funding payment on record
	_, err := logic.Release(context.Background(), m.Id, client.Id)
	assert.ErrorIs(t, err, ErrConflict)

	updated := firstMilestone(t, db, project.Id)
	assert.Equal(t, model.EscrowStatusPendingApproval, updated.Status, "escrow must not move")
}

func TestReleaseHappyPath(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	setMilestoneStatus(t, db, m.Id, model.EscrowStatusPendingApproval)
	seedSucceededFunding(t, db, m)

	// mark the next tranche funded so the release opens its work window
	var next model.ProjectMilestoneModel
	require.NoError(t, db.Where("project_id = ? AND order_index = 1", project.Id).First(&next).Error)
	setMilestoneStatus(t, db, next.Id, model.EscrowStatusFunded)

	record, err := logic.Release(context.Background(), m.Id, client.Id)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentKindRelease, record.Kind)
	assert.Equal(t, m.Amount, record.Amount)
	assert.Equal(t, model.PaymentStatusPending, record.Status)

	updated := firstMilestone(t, db, project.Id)
	assert.Equal(t, model.EscrowStatusReleased, updated.Status)
	assert.NotNil(t, updated.ReleasedAt)

	require.NoError(t, db.First(&next, next.Id).Error)
	assert.Equal(t, model.EscrowStatusPendingSubmission, next.Status)
}

func TestReleaseOnlyByProjectOwner(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	logic := NewMilestoneLogic(db, unreachablePayClient(), "usd")

	m := firstMilestone(t, db, project.Id)
	setMilestoneStatus(t, db, m.Id, model.EscrowStatusPendingApproval)
	seedSucceededFunding(t, db, m)

	_, err := logic.Release(context.Background(), m.Id, freelancer.Id)
	assert.ErrorIs(t, err, ErrForbidden, "the team cannot release its own payment")
}
