package logic

import (
	"errors"
	"fmt"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"gorm.io/gorm"
)

// default milestone titles for the three-tranche split
var defaultMilestoneTitles = []string{
	"Project kickoff & initial deliverables",
	"Core development & mid-project review",
	"Final delivery & handover",
}

// ProjectLogic project intake and lifecycle
type ProjectLogic struct {
	db             *gorm.DB
	milestoneSplit []int
}

// NewProjectLogic creates the project business logic. split is the
// milestone percentage set, validated once here.
func NewProjectLogic(db *gorm.DB, split []int) (*ProjectLogic, error) {
	if len(split) == 0 {
		split = []int{30, 40, 30}
	}
	if err := ValidateSplit(split); err != nil {
		return nil, err
	}
	return &ProjectLogic{db: db, milestoneSplit: split}, nil
}

// CreateProjectInput validated intake payload
type CreateProjectInput struct {
	Title       string
	Description string
	Industry    string
	Skills      []string
	Timeline    string
	Budget      string // free-form, sanitized here
	Currency    string
	FileIds     []int64 // previously uploaded attachments
}

// CreateProject inserts the project and its milestone tranches in one
// transaction. A failed milestone insert rolls the project back; there is
// no partially created project.
func (p *ProjectLogic) CreateProject(userId int64, in *CreateProjectInput) (*model.ProjectModel, error) {
	if in.Title == "" {
		return nil, validationError("project title is required")
	}
	if in.Description == "" {
		return nil, validationError("project description is required")
	}
	if len(in.FileIds) == 0 {
		return nil, validationError("at least one attached file is required")
	}

	budget := SanitizeBudget(in.Budget)
	if budget <= 0 {
		return nil, validationError("budget must be a positive amount")
	}

	currency := in.Currency
	if currency == "" {
		currency = "usd"
	}

	project := &model.ProjectModel{
		Title:          in.Title,
		Description:    in.Description,
		Industry:       in.Industry,
		SkillsRequired: in.Skills,
		BudgetAmount:   budget,
		Currency:       currency,
		Timeline:       in.Timeline,
		Status:         model.ProjectStatusMatching,
		UserId:         userId,
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		amounts := SplitAmount(budget, p.milestoneSplit)
		for i, amount := range amounts {
			title := fmt.Sprintf("Milestone %d", i+1)
			if i < len(defaultMilestoneTitles) {
				title = defaultMilestoneTitles[i]
			}
			milestone := &model.ProjectMilestoneModel{
				ProjectId:  project.Id,
				OrderIndex: i,
				Title:      title,
				Percentage: p.milestoneSplit[i],
				Amount:     amount,
				Status:     model.EscrowStatusCreated,
			}
			if err := tx.Create(milestone).Error; err != nil {
				return err
			}
		}

		// claim the uploaded attachments; a file owned by someone else or
		// already attached elsewhere fails the whole submission
		result := tx.Model(&model.ProjectFileModel{}).
			Where("id IN ? AND user_id = ? AND project_id = 0", in.FileIds, userId).
			Update("project_id", project.Id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(in.FileIds)) {
			return validationError("one or more attached files are not available")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.GetProject(project.Id)
}

// GetProjects lists projects with optional filters and pagination.
func (p *ProjectLogic) GetProjects(status, industry string, userId int64, page, pageSize int) ([]model.ProjectModel, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if userId != 0 {
		query = query.Where("user_id = ?", userId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.ProjectModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetProject loads one project with milestones and files.
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	err := p.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Preload("Files").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

// UpdateProject updates the editable subset of fields.
func (p *ProjectLogic) UpdateProject(id, userId int64, updates map[string]interface{}) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	if project.UserId != userId {
		return ErrForbidden
	}

	allowed := map[string]bool{"title": true, "description": true, "industry": true, "timeline": true}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return validationError("no updatable fields supplied")
	}

	return p.db.Model(&model.ProjectModel{}).Where("id = ?", id).Updates(updates).Error
}

// CancelProject marks a project cancelled. Projects with funded escrow
// cannot be cancelled from here; refunds are a provider-side concern.
func (p *ProjectLogic) CancelProject(id, userId int64) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	if project.UserId != userId {
		return ErrForbidden
	}

	for _, m := range project.Milestones {
		if m.Status != model.EscrowStatusCreated {
			return conflictError("project has funded milestones and cannot be cancelled")
		}
	}

	return p.db.Model(&model.ProjectModel{}).
		Where("id = ?", id).
		Update("status", model.ProjectStatusCancelled).Error
}

// RegisterFile records an uploaded attachment, not yet bound to a project.
func (p *ProjectLogic) RegisterFile(file *model.ProjectFileModel) error {
	return p.db.Create(file).Error
}

// GetFile loads one attachment. The uploader always has access; once the
// file is attached to a project, the project owner and the awarded team's
// owner do too.
func (p *ProjectLogic) GetFile(fileId, userId int64) (*model.ProjectFileModel, error) {
	var file model.ProjectFileModel
	if err := p.db.First(&file, fileId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	if file.UserId == userId {
		return &file, nil
	}
	if file.ProjectId == 0 {
		return nil, ErrForbidden
	}

	var project model.ProjectModel
	if err := p.db.First(&project, file.ProjectId).Error; err != nil {
		return nil, ErrForbidden
	}
	if project.UserId == userId {
		return &file, nil
	}
	if project.TeamId != 0 {
		var team model.TeamModel
		if err := p.db.First(&team, project.TeamId).Error; err == nil && team.OwnerId == userId {
			return &file, nil
		}
	}
	return nil, ErrForbidden
}

// GetProjectStats aggregates counts and escrow totals for one project.
func (p *ProjectLogic) GetProjectStats(id int64) (map[string]interface{}, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	var releasedAmount, fundedAmount int64
	released := 0
	for _, m := range project.Milestones {
		switch m.Status {
		case model.EscrowStatusReleased:
			releasedAmount += m.Amount
			released++
		case model.EscrowStatusFunded, model.EscrowStatusPendingSubmission, model.EscrowStatusPendingApproval:
			fundedAmount += m.Amount
		}
	}

	completion := float64(0)
	if project.BudgetAmount > 0 {
		completion = float64(releasedAmount) / float64(project.BudgetAmount) * 100
	}

	return map[string]interface{}{
		"project_id":            project.Id,
		"status":                string(project.Status),
		"budget_amount":         project.BudgetAmount,
		"funded_amount":         fundedAmount,
		"released_amount":       releasedAmount,
		"released_milestones":   released,
		"total_milestones":      len(project.Milestones),
		"completion_percentage": completion,
	}, nil
}

// GetAllProjectStats aggregates marketplace-wide counts.
func (p *ProjectLogic) GetAllProjectStats() (map[string]interface{}, error) {
	var totalProjects int64
	p.db.Model(&model.ProjectModel{}).Count(&totalProjects)

	counts := make(map[string]int64)
	for _, status := range []model.ProjectStatus{
		model.ProjectStatusMatching,
		model.ProjectStatusActive,
		model.ProjectStatusCompleted,
		model.ProjectStatusCancelled,
	} {
		var n int64
		p.db.Model(&model.ProjectModel{}).Where("status = ?", status).Count(&n)
		counts[string(status)] = n
	}

	var totalBudget int64
	p.db.Model(&model.ProjectModel{}).
		Where("status <> ?", model.ProjectStatusCancelled).
		Select("COALESCE(SUM(budget_amount), 0)").
		Scan(&totalBudget)

	var releasedAmount int64
	p.db.Model(&model.ProjectMilestoneModel{}).
		Where("status = ?", model.EscrowStatusReleased).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&releasedAmount)

	return map[string]interface{}{
		"totalProjects":     totalProjects,
		"matchingProjects":  counts[string(model.ProjectStatusMatching)],
		"activeProjects":    counts[string(model.ProjectStatusActive)],
		"completedProjects": counts[string(model.ProjectStatusCompleted)],
		"cancelledProjects": counts[string(model.ProjectStatusCancelled)],
		"totalBudget":       totalBudget,
		"releasedAmount":    releasedAmount,
	}, nil
}

// MarkCompletedIfDone flips the project to completed once every milestone
// is released.
func (p *ProjectLogic) MarkCompletedIfDone(projectId int64) error {
	var pending int64
	err := p.db.Model(&model.ProjectMilestoneModel{}).
		Where("project_id = ? AND status <> ?", projectId, model.EscrowStatusReleased).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	return p.db.Model(&model.ProjectModel{}).
		Where("id = ?", projectId).
		Update("status", model.ProjectStatusCompleted).Error
}
