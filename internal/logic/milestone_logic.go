package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/metrics"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilestoneLogic escrow state machine over project milestones. Every
// transition is checked against model.CanTransition; funding is only ever
// applied from verified provider events, and release requires a succeeded
// funding payment on record.
type MilestoneLogic struct {
	db        *gorm.DB
	payClient *payment.Client
	currency  string
}

// NewMilestoneLogic creates the milestone business logic.
func NewMilestoneLogic(db *gorm.DB, payClient *payment.Client, currency string) *MilestoneLogic {
	if currency == "" {
		currency = "usd"
	}
	return &MilestoneLogic{db: db, payClient: payClient, currency: currency}
}

// GetProjectMilestones lists a project's milestones in tranche order.
func (m *MilestoneLogic) GetProjectMilestones(projectId int64) ([]model.ProjectMilestoneModel, error) {
	var milestones []model.ProjectMilestoneModel
	err := m.db.Where("project_id = ?", projectId).
		Order("order_index ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// GetMilestone loads one milestone.
func (m *MilestoneLogic) GetMilestone(id int64) (*model.ProjectMilestoneModel, error) {
	var milestone model.ProjectMilestoneModel
	if err := m.db.First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

// transition applies one guarded status change inside a transaction, using
// a conditional update so concurrent calls cannot double-apply.
func (m *MilestoneLogic) transition(tx *gorm.DB, milestone *model.ProjectMilestoneModel, to model.EscrowStatus, extra map[string]interface{}) error {
	if !model.CanTransition(milestone.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, milestone.Status, to)
	}

	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	result := tx.Model(&model.ProjectMilestoneModel{}).
		Where("id = ? AND status = ?", milestone.Id, milestone.Status).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// lost a race with another transition
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, milestone.Status, to)
	}

	metrics.EscrowTransitionCount.WithLabelValues(string(to)).Inc()
	milestone.Status = to
	return nil
}

// MarkFunded moves created -> funded. Only the webhook dispatcher and the
// reconciliation job call this, never a request handler.
func (m *MilestoneLogic) MarkFunded(milestoneId int64) error {
	milestone, err := m.GetMilestone(milestoneId)
	if err != nil {
		return err
	}
	return m.transition(m.db, milestone, model.EscrowStatusFunded, nil)
}

// StartWork opens the work window: funded -> pending_submission. Callable
// by the project owner once a team is on the project.
func (m *MilestoneLogic) StartWork(milestoneId, userId int64) error {
	milestone, err := m.GetMilestone(milestoneId)
	if err != nil {
		return err
	}

	var project model.ProjectModel
	if err := m.db.First(&project, milestone.ProjectId).Error; err != nil {
		return err
	}
	if project.UserId != userId {
		return ErrForbidden
	}
	if project.TeamId == 0 {
		return conflictError("no team has accepted this project yet")
	}

	return m.transition(m.db, milestone, model.EscrowStatusPendingSubmission, nil)
}

// SubmitDeliverable records the team's submission: pending_submission ->
// pending_approval.
func (m *MilestoneLogic) SubmitDeliverable(milestoneId, userId int64) error {
	milestone, err := m.GetMilestone(milestoneId)
	if err != nil {
		return err
	}

	var project model.ProjectModel
	if err := m.db.First(&project, milestone.ProjectId).Error; err != nil {
		return err
	}

	// only the owner of the awarded team may submit
	var team model.TeamModel
	if err := m.db.First(&team, project.TeamId).Error; err != nil {
		return conflictError("no team has accepted this project yet")
	}
	if team.OwnerId != userId {
		return ErrForbidden
	}

	now := time.Now()
	return m.transition(m.db, milestone, model.EscrowStatusPendingApproval, map[string]interface{}{
		"submitted_at": &now,
	})
}

// Release approves the deliverable and pays the tranche out:
// pending_approval -> released. The transition is refused unless a
// succeeded funding payment exists for this milestone, so a bare API call
// can never release money the provider has not confirmed.
func (m *MilestoneLogic) Release(ctx context.Context, milestoneId, userId int64) (*model.PaymentRecordModel, error) {
	milestone, err := m.GetMilestone(milestoneId)
	if err != nil {
		return nil, err
	}

	var project model.ProjectModel
	if err := m.db.First(&project, milestone.ProjectId).Error; err != nil {
		return nil, err
	}
	if project.UserId != userId {
		return nil, ErrForbidden
	}

	if milestone.Status != model.EscrowStatusPendingApproval {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, milestone.Status, model.EscrowStatusReleased)
	}

	// server-verified precondition: the funding payment must have succeeded
	var funding model.PaymentRecordModel
	err = m.db.Where("milestone_id = ? AND kind = ? AND status = ?",
		milestoneId, model.PaymentKindFunding, model.PaymentStatusSucceeded).
		First(&funding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, conflictError("milestone has no confirmed funding payment")
		}
		return nil, err
	}

	var team model.TeamModel
	if err := m.db.First(&team, project.TeamId).Error; err != nil {
		return nil, conflictError("no team has accepted this project yet")
	}

	release := &model.PaymentRecordModel{
		ProjectId:      milestone.ProjectId,
		MilestoneId:    milestone.Id,
		Kind:           model.PaymentKindRelease,
		Amount:         milestone.Amount,
		Currency:       m.currency,
		Status:         model.PaymentStatusPending,
		IdempotencyKey: uuid.NewString(),
	}

	now := time.Now()
	err = m.db.Transaction(func(tx *gorm.DB) error {
		if err := m.transition(tx, milestone, model.EscrowStatusReleased, map[string]interface{}{
			"released_at": &now,
		}); err != nil {
			return err
		}
		return tx.Create(release).Error
	})
	if err != nil {
		return nil, err
	}

	// payout through the provider; the transfer.paid webhook confirms it
	transfer, err := m.payClient.CreateTransfer(ctx, milestone.Amount, m.currency,
		fmt.Sprintf("team_%d", team.Id), release.IdempotencyKey,
		map[string]string{
			"project_id":   fmt.Sprintf("%d", milestone.ProjectId),
			"milestone_id": fmt.Sprintf("%d", milestone.Id),
		})
	if err != nil {
		// escrow already flipped; the record stays pending with no provider
		// id and the reconciliation job re-creates the transfer
		logger.Error("Failed to create transfer for milestone %d: %v", milestone.Id, err)
		return release, nil
	}

	if err := m.db.Model(release).Update("provider_intent_id", transfer.Id).Error; err != nil {
		logger.Error("Failed to record transfer id for payment %d: %v", release.Id, err)
	}
	release.ProviderIntentId = transfer.Id

	// open the next tranche's work window when it is already funded
	if err := m.advanceNext(milestone); err != nil {
		logger.Warn("Failed to advance next milestone after release: %v", err)
	}

	return release, nil
}

// advanceNext moves the next funded tranche into pending_submission so the
// team can keep working without another kickoff call.
func (m *MilestoneLogic) advanceNext(released *model.ProjectMilestoneModel) error {
	var next model.ProjectMilestoneModel
	err := m.db.Where("project_id = ? AND order_index = ?", released.ProjectId, released.OrderIndex+1).
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if next.Status != model.EscrowStatusFunded {
		return nil
	}
	return m.transition(m.db, &next, model.EscrowStatusPendingSubmission, nil)
}

// DueSoon lists funded or in-flight milestones with a due date inside the
// window. Used by the reminder job.
func (m *MilestoneLogic) DueSoon(window time.Duration) ([]model.ProjectMilestoneModel, error) {
	cutoff := time.Now().Add(window)
	var milestones []model.ProjectMilestoneModel
	err := m.db.Where("due_date IS NOT NULL AND due_date <= ? AND status IN ?",
		cutoff,
		[]model.EscrowStatus{model.EscrowStatusPendingSubmission, model.EscrowStatusFunded}).
		Find(&milestones).Error
	return milestones, err
}
