package handler

import (
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
)

// Pagination page info included in list responses
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// UserResponse account response model
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserResponse(user *model.UserModel) UserResponse {
	return UserResponse{
		ID:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// ProjectResponse project response model
type ProjectResponse struct {
	ID             int64               `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Industry       string              `json:"industry"`
	SkillsRequired []string            `json:"skillsRequired"`
	BudgetAmount   int64               `json:"budgetAmount"`
	Currency       string              `json:"currency"`
	Timeline       string              `json:"timeline"`
	Status         string              `json:"status"`
	UserID         int64               `json:"userId"`
	TeamID         int64               `json:"teamId"`
	Milestones     []MilestoneResponse `json:"milestones,omitempty"`
	Files          []FileResponse      `json:"files,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func ToProjectResponse(project *model.ProjectModel) ProjectResponse {
	resp := ProjectResponse{
		ID:             project.Id,
		Title:          project.Title,
		Description:    project.Description,
		Industry:       project.Industry,
		SkillsRequired: project.SkillsRequired,
		BudgetAmount:   project.BudgetAmount,
		Currency:       project.Currency,
		Timeline:       project.Timeline,
		Status:         string(project.Status),
		UserID:         project.UserId,
		TeamID:         project.TeamId,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
	for i := range project.Milestones {
		resp.Milestones = append(resp.Milestones, ToMilestoneResponse(&project.Milestones[i]))
	}
	for i := range project.Files {
		resp.Files = append(resp.Files, ToFileResponse(&project.Files[i]))
	}
	return resp
}

func ToProjectResponseList(projects []model.ProjectModel) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i := range projects {
		result[i] = ToProjectResponse(&projects[i])
	}
	return result
}

// MilestoneResponse escrow tranche response model
type MilestoneResponse struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"projectId"`
	OrderIndex  int        `json:"orderIndex"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Percentage  int        `json:"percentage"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	SubmittedAt *time.Time `json:"submittedAt"`
	ReleasedAt  *time.Time `json:"releasedAt"`
}

func ToMilestoneResponse(milestone *model.ProjectMilestoneModel) MilestoneResponse {
	return MilestoneResponse{
		ID:          milestone.Id,
		ProjectID:   milestone.ProjectId,
		OrderIndex:  milestone.OrderIndex,
		Title:       milestone.Title,
		Description: milestone.Description,
		Percentage:  milestone.Percentage,
		Amount:      milestone.Amount,
		Status:      string(milestone.Status),
		DueDate:     milestone.DueDate,
		SubmittedAt: milestone.SubmittedAt,
		ReleasedAt:  milestone.ReleasedAt,
	}
}

func ToMilestoneResponseList(milestones []model.ProjectMilestoneModel) []MilestoneResponse {
	result := make([]MilestoneResponse, len(milestones))
	for i := range milestones {
		result[i] = ToMilestoneResponse(&milestones[i])
	}
	return result
}

// FileResponse uploaded attachment response model
type FileResponse struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"projectId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	PublicURL   string    `json:"publicUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToFileResponse(file *model.ProjectFileModel) FileResponse {
	return FileResponse{
		ID:          file.Id,
		ProjectID:   file.ProjectId,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		SizeBytes:   file.SizeBytes,
		PublicURL:   file.PublicURL,
		CreatedAt:   file.CreatedAt,
	}
}

// TeamResponse team profile response model
type TeamResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Bio          string               `json:"bio"`
	LogoURL      string               `json:"logoUrl"`
	Location     string               `json:"location"`
	Skills       []string             `json:"skills"`
	Industries   []string             `json:"industries"`
	RateMin      int64                `json:"rateMin"`
	RateMax      int64                `json:"rateMax"`
	Rating       float64              `json:"rating"`
	ProjectsDone int                  `json:"projectsDone"`
	OwnerID      int64                `json:"ownerId"`
	IsActive     bool                 `json:"isActive"`
	Members      []TeamMemberResponse `json:"members,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

func ToTeamResponse(team *model.TeamModel) TeamResponse {
	resp := TeamResponse{
		ID:           team.Id,
		Name:         team.Name,
		Bio:          team.Bio,
		LogoURL:      team.LogoURL,
		Location:     team.Location,
		Skills:       team.Skills,
		Industries:   team.Industries,
		RateMin:      team.RateMin,
		RateMax:      team.RateMax,
		Rating:       team.Rating,
		ProjectsDone: team.ProjectsDone,
		OwnerID:      team.OwnerId,
		IsActive:     team.IsActive,
		CreatedAt:    team.CreatedAt,
	}
	for i := range team.Members {
		resp.Members = append(resp.Members, ToTeamMemberResponse(&team.Members[i]))
	}
	return resp
}

func ToTeamResponseList(teams []model.TeamModel) []TeamResponse {
	result := make([]TeamResponse, len(teams))
	for i := range teams {
		result[i] = ToTeamResponse(&teams[i])
	}
	return result
}

// TeamMemberResponse team member response model
type TeamMemberResponse struct {
	ID         int64  `json:"id"`
	MemberName string `json:"memberName"`
	MemberRole string `json:"memberRole"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatarUrl"`
}

func ToTeamMemberResponse(member *model.TeamMemberModel) TeamMemberResponse {
	return TeamMemberResponse{
		ID:         member.Id,
		MemberName: member.MemberName,
		MemberRole: member.MemberRole,
		Bio:        member.Bio,
		AvatarURL:  member.AvatarURL,
	}
}

// MatchResponse team matching score response model
type MatchResponse struct {
	Team          TeamResponse `json:"team"`
	Score         float64      `json:"score"`
	SkillFit      float64      `json:"skillFit"`
	IndustryFit   float64      `json:"industryFit"`
	BudgetFit     float64      `json:"budgetFit"`
	MatchedSkills []string     `json:"matchedSkills"`
}

func ToMatchResponseList(matches []logic.TeamMatch) []MatchResponse {
	result := make([]MatchResponse, len(matches))
	for i := range matches {
		result[i] = MatchResponse{
			Team:          ToTeamResponse(&matches[i].Team),
			Score:         matches[i].Score.Total,
			SkillFit:      matches[i].Score.SkillFit,
			IndustryFit:   matches[i].Score.IndustryFit,
			BudgetFit:     matches[i].Score.BudgetFit,
			MatchedSkills: matches[i].Score.MatchedSkills,
		}
	}
	return result
}

// PaymentRecordResponse money movement response model
type PaymentRecordResponse struct {
	ID            int64      `json:"id"`
	ProjectID     int64      `json:"projectId"`
	MilestoneID   int64      `json:"milestoneId"`
	Kind          string     `json:"kind"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failureReason,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func ToPaymentRecordResponse(record *model.PaymentRecordModel) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:            record.Id,
		ProjectID:     record.ProjectId,
		MilestoneID:   record.MilestoneId,
		Kind:          string(record.Kind),
		Amount:        record.Amount,
		Currency:      record.Currency,
		Status:        string(record.Status),
		FailureReason: record.FailureReason,
		ConfirmedAt:   record.ConfirmedAt,
		CreatedAt:     record.CreatedAt,
	}
}

func ToPaymentRecordResponseList(records []model.PaymentRecordModel) []PaymentRecordResponse {
	result := make([]PaymentRecordResponse, len(records))
	for i := range records {
		result[i] = ToPaymentRecordResponse(&records[i])
	}
	return result
}

// InvitationResponse team invitation response model
type InvitationResponse struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"projectId"`
	TeamID      int64      `json:"teamId"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"respondedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func ToInvitationResponse(invitation *model.TeamInvitationModel) InvitationResponse {
	return InvitationResponse{
		ID:          invitation.Id,
		ProjectID:   invitation.ProjectId,
		TeamID:      invitation.TeamId,
		Message:     invitation.Message,
		Status:      string(invitation.Status),
		RespondedAt: invitation.RespondedAt,
		CreatedAt:   invitation.CreatedAt,
	}
}

func ToInvitationResponseList(invitations []model.TeamInvitationModel) []InvitationResponse {
	result := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		result[i] = ToInvitationResponse(&invitations[i])
	}
	return result
}

// ChatMessageResponse chat message response model
type ChatMessageResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	UserID    int64     `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToChatMessageResponseList(messages []model.ChatMessageModel) []ChatMessageResponse {
	result := make([]ChatMessageResponse, len(messages))
	for i, message := range messages {
		result[i] = ChatMessageResponse{
			ID:        message.Id,
			ProjectID: message.ProjectId,
			UserID:    message.UserId,
			Body:      message.Body,
			CreatedAt: message.CreatedAt,
		}
	}
	return result
}

// CampaignResponse email campaign response model
type CampaignResponse struct {
	ID             int64      `json:"id"`
	Subject        string     `json:"subject"`
	Audience       string     `json:"audience"`
	Status         string     `json:"status"`
	ScheduledAt    *time.Time `json:"scheduledAt"`
	DispatchedAt   *time.Time `json:"dispatchedAt"`
	RecipientCount int        `json:"recipientCount"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func ToCampaignResponse(campaign *model.EmailCampaignModel) CampaignResponse {
	return CampaignResponse{
		ID:             campaign.Id,
		Subject:        campaign.Subject,
		Audience:       campaign.Audience,
		Status:         string(campaign.Status),
		ScheduledAt:    campaign.ScheduledAt,
		DispatchedAt:   campaign.DispatchedAt,
		RecipientCount: campaign.RecipientCount,
		CreatedAt:      campaign.CreatedAt,
	}
}

func ToCampaignResponseList(campaigns []model.EmailCampaignModel) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		result[i] = ToCampaignResponse(&campaigns[i])
	}
	return result
}
