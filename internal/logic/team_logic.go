package logic

import (
	"errors"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/match"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"gorm.io/gorm"
)

// TeamLogic team profiles, matching and invitations
type TeamLogic struct {
	db *gorm.DB
}

// NewTeamLogic creates the team business logic.
func NewTeamLogic(db *gorm.DB) *TeamLogic {
	return &TeamLogic{db: db}
}

// CreateTeam creates a team profile owned by the calling user.
func (t *TeamLogic) CreateTeam(ownerId int64, team *model.TeamModel) error {
	if team.Name == "" {
		return validationError("team name is required")
	}
	if team.RateMin < 0 || team.RateMax < 0 || (team.RateMax > 0 && team.RateMin > team.RateMax) {
		return validationError("invalid rate band")
	}

	team.OwnerId = ownerId
	team.IsActive = true
	return t.db.Create(team).Error
}

// GetTeams lists active teams with optional skill filter and pagination.
func (t *TeamLogic) GetTeams(skill string, page, pageSize int) ([]model.TeamModel, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := t.db.Model(&model.TeamModel{}).Where("is_active = ?", true)
	if skill != "" {
		// skills column holds a JSON array
		query = query.Where("skills LIKE ?", "%"+skill+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []model.TeamModel
	err := query.Order("rating DESC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Members").
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// GetTeam loads one team with members.
func (t *TeamLogic) GetTeam(id int64) (*model.TeamModel, error) {
	var team model.TeamModel
	if err := t.db.Preload("Members").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// UpdateTeam updates the editable subset of fields, owner only.
func (t *TeamLogic) UpdateTeam(id, userId int64, updates map[string]interface{}) error {
	team, err := t.GetTeam(id)
	if err != nil {
		return err
	}
	if team.OwnerId != userId {
		return ErrForbidden
	}

	allowed := map[string]bool{
		"name": true, "bio": true, "logo_url": true, "location": true,
		"skills": true, "industries": true, "rate_min": true, "rate_max": true,
		"is_active": true,
	}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return validationError("no updatable fields supplied")
	}

	return t.db.Model(&model.TeamModel{}).Where("id = ?", id).Updates(updates).Error
}

// AddMember appends a member to the team profile, owner only.
func (t *TeamLogic) AddMember(teamId, userId int64, member *model.TeamMemberModel) error {
	team, err := t.GetTeam(teamId)
	if err != nil {
		return err
	}
	if team.OwnerId != userId {
		return ErrForbidden
	}
	if member.MemberName == "" || member.MemberRole == "" {
		return validationError("member name and role are required")
	}

	member.TeamId = teamId
	member.IsActive = true
	if member.JoinTime.IsZero() {
		member.JoinTime = time.Now()
	}
	return t.db.Create(member).Error
}

// TeamMatch one ranked candidate with its full profile.
type TeamMatch struct {
	Team  model.TeamModel
	Score match.Score
}

// MatchTeams ranks active teams against a project.
func (t *TeamLogic) MatchTeams(project *model.ProjectModel, limit int) ([]TeamMatch, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var teams []model.TeamModel
	if err := t.db.Preload("Members").Where("is_active = ?", true).Find(&teams).Error; err != nil {
		return nil, err
	}

	byId := make(map[int64]*model.TeamModel, len(teams))
	for i := range teams {
		byId[teams[i].Id] = &teams[i]
	}

	scores := match.Rank(project, teams)
	if len(scores) > limit {
		scores = scores[:limit]
	}

	matches := make([]TeamMatch, len(scores))
	for i, score := range scores {
		matches[i] = TeamMatch{Team: *byId[score.TeamId], Score: score}
	}
	return matches, nil
}

// Invite records a client's invitation to a team. The composite unique
// index absorbs double-submits: the second insert returns the existing
// invitation instead of failing or duplicating.
func (t *TeamLogic) Invite(projectId, teamId, userId int64, message string) (*model.TeamInvitationModel, error) {
	var project model.ProjectModel
	if err := t.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.UserId != userId {
		return nil, ErrForbidden
	}
	if project.Status != model.ProjectStatusMatching {
		return nil, conflictError("project is not open for invitations")
	}
	if _, err := t.GetTeam(teamId); err != nil {
		return nil, err
	}

	invitation := &model.TeamInvitationModel{
		ProjectId: projectId,
		TeamId:    teamId,
		UserId:    userId,
		Message:   message,
		Status:    model.InvitationStatusPending,
	}
	if err := t.db.Create(invitation).Error; err != nil {
		if isDuplicateKeyError(err) {
			var existing model.TeamInvitationModel
			if err := t.db.Where("project_id = ? AND team_id = ?", projectId, teamId).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return invitation, nil
}

// RespondInvitation lets the invited team's owner accept or decline.
// Accepting awards the project and moves it to active.
func (t *TeamLogic) RespondInvitation(invitationId, userId int64, accept bool) error {
	var invitation model.TeamInvitationModel
	if err := t.db.First(&invitation, invitationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if invitation.Status != model.InvitationStatusPending {
		return conflictError("invitation already answered")
	}

	team, err := t.GetTeam(invitation.TeamId)
	if err != nil {
		return err
	}
	if team.OwnerId != userId {
		return ErrForbidden
	}

	now := time.Now()
	status := model.InvitationStatusDeclined
	if accept {
		status = model.InvitationStatusAccepted
	}

	return t.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TeamInvitationModel{}).
			Where("id = ? AND status = ?", invitationId, model.InvitationStatusPending).
			Updates(map[string]interface{}{
				"status":       status,
				"responded_at": &now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return conflictError("invitation already answered")
		}

		if !accept {
			return nil
		}

		// award the project; a second accepted team loses the race here
		award := tx.Model(&model.ProjectModel{}).
			Where("id = ? AND team_id = 0", invitation.ProjectId).
			Updates(map[string]interface{}{
				"team_id": invitation.TeamId,
				"status":  model.ProjectStatusActive,
			})
		if award.Error != nil {
			return award.Error
		}
		if award.RowsAffected == 0 {
			return conflictError("project already has a team")
		}
		return nil
	})
}

// ListTeamInvitations lists invitations addressed to teams the user owns.
func (t *TeamLogic) ListTeamInvitations(userId int64) ([]model.TeamInvitationModel, error) {
	var invitations []model.TeamInvitationModel
	err := t.db.Joins("JOIN team ON team.id = team_invitation.team_id").
		Where("team.owner_id = ?", userId).
		Order("team_invitation.created_at DESC").
		Find(&invitations).Error
	return invitations, err
}
