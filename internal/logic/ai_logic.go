package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/ai"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"gorm.io/gorm"
)

// AILogic assistant panels. Every method degrades to static copy when the
// provider call fails; a broken LLM must never take a page down with it.
type AILogic struct {
	db     *gorm.DB
	client *ai.Client
}

// NewAILogic creates the AI business logic.
func NewAILogic(db *gorm.DB, client *ai.Client) *AILogic {
	return &AILogic{db: db, client: client}
}

const (
	fallbackBio = "A dedicated team of professionals ready to bring your project to life. " +
		"Reach out to learn more about our experience and approach."
	fallbackInsights = "Review the project scope, budget and timeline with your team before " +
		"kicking off. Clear milestones keep both sides aligned."
	fallbackChat = "I'm having trouble answering right now. Please try again in a moment, " +
		"or browse the help section for common questions."
	fallbackFileSummary = "This file has been attached to the project. Open it to review " +
		"the details with your team."
)

// GenerateBio drafts a team bio from the team's own profile fields.
func (a *AILogic) GenerateBio(ctx context.Context, teamId, userId int64) (string, error) {
	var team model.TeamModel
	if err := a.db.First(&team, teamId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if team.OwnerId != userId {
		return "", ErrForbidden
	}

	prompt := fmt.Sprintf(
		"Write a short professional bio (2-3 sentences) for a freelance team named %q. "+
			"Skills: %s. Location: %s. Write in third person, no headings.",
		team.Name, strings.Join(team.Skills, ", "), team.Location)

	text, err := a.client.Complete(ctx, "generate_bio", []ai.Message{
		{Role: "system", Content: "You write concise marketing copy for freelance team profiles."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("Bio generation failed for team %d, serving fallback: %v", teamId, err)
		return fallbackBio, nil
	}
	return strings.TrimSpace(text), nil
}

// ProjectInsights summarizes a project for its owner's dashboard panel.
func (a *AILogic) ProjectInsights(ctx context.Context, projectId, userId int64) (string, error) {
	var project model.ProjectModel
	if err := a.db.Preload("Milestones").First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if project.UserId != userId {
		return "", ErrForbidden
	}

	var status []string
	for _, milestone := range project.Milestones {
		status = append(status, fmt.Sprintf("%s: %s", milestone.Title, milestone.Status))
	}

	prompt := fmt.Sprintf(
		"Project %q in the %s industry. Description: %s. Timeline: %s. "+
			"Milestone status: %s. Give the client 3 short, practical observations "+
			"about how the project is going and what to do next. Plain text, no markdown.",
		project.Title, project.Industry, project.Description, project.Timeline,
		strings.Join(status, "; "))

	text, err := a.client.Complete(ctx, "project_insights", []ai.Message{
		{Role: "system", Content: "You are a project advisor for clients hiring freelance teams."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("Insights generation failed for project %d, serving fallback: %v", projectId, err)
		return fallbackInsights, nil
	}
	return strings.TrimSpace(text), nil
}

// ChatTurn answers one support chatbot turn. History comes from the client
// and is capped; the bot holds no server state.
func (a *AILogic) ChatTurn(ctx context.Context, history []ai.Message, question string) (string, error) {
	if question == "" {
		return "", validationError("question is required")
	}
	if len(history) > 20 {
		history = history[len(history)-20:]
	}

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{
		Role: "system",
		Content: "You are the support assistant for a freelance team marketplace. " +
			"Clients post projects with milestone escrow; teams get matched and invited. " +
			"Answer briefly and only about using the platform.",
	})
	for _, m := range history {
		if m.Role == "user" || m.Role == "assistant" {
			messages = append(messages, m)
		}
	}
	messages = append(messages, ai.Message{Role: "user", Content: question})

	text, err := a.client.Complete(ctx, "chat_turn", messages)
	if err != nil {
		logger.Warn("Chatbot turn failed, serving fallback: %v", err)
		return fallbackChat, nil
	}
	return strings.TrimSpace(text), nil
}

// OnboardingChecklist builds a personalized getting-started list. The
// static list is both the fallback and the base the model elaborates on.
func (a *AILogic) OnboardingChecklist(ctx context.Context, userId int64) ([]string, error) {
	var user model.UserModel
	if err := a.db.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	base := checklistForRole(user.Role)

	prompt := fmt.Sprintf(
		"A %s just signed up for a freelance team marketplace. "+
			"Rewrite this onboarding checklist in a friendly tone, one item per line, "+
			"no numbering or bullets: %s",
		user.Role, strings.Join(base, " | "))

	text, err := a.client.Complete(ctx, "onboarding_checklist", []ai.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("Checklist generation failed for user %d, serving fallback: %v", userId, err)
		return base, nil
	}

	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return base, nil
	}
	return items, nil
}

func checklistForRole(role model.UserRole) []string {
	if role == model.UserRoleFreelancer {
		return []string{
			"Create your team profile with skills and rates",
			"Add your team members",
			"Generate a bio for your profile page",
			"Watch for project invitations from clients",
		}
	}
	return []string{
		"Describe your project and attach any briefs",
		"Review your matched teams",
		"Invite a team and fund the first milestone",
		"Track progress through the milestone board",
	}
}

// SummarizeFile produces a one-paragraph summary of an uploaded brief from
// its name and extracted text. Binary files get the static summary.
func (a *AILogic) SummarizeFile(ctx context.Context, file *model.ProjectFileModel, extractedText string) (string, error) {
	if extractedText == "" {
		return fallbackFileSummary, nil
	}
	if len(extractedText) > 8000 {
		extractedText = extractedText[:8000]
	}

	prompt := fmt.Sprintf(
		"Summarize this project document %q in one short paragraph for the team "+
			"that will work on it:\n\n%s", file.FileName, extractedText)

	text, err := a.client.Complete(ctx, "summarize_file", []ai.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("File summary failed for file %d, serving fallback: %v", file.Id, err)
		return fallbackFileSummary, nil
	}
	return strings.TrimSpace(text), nil
}
