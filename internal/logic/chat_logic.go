package logic

import (
	"errors"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/mq"
	"gorm.io/gorm"
)

// ChatLogic project chat messages
type ChatLogic struct {
	db        *gorm.DB
	publisher *mq.Publisher
}

// NewChatLogic creates the chat business logic. publisher may be nil in
// tests; notification publishing is best effort.
func NewChatLogic(db *gorm.DB, publisher *mq.Publisher) *ChatLogic {
	return &ChatLogic{db: db, publisher: publisher}
}

// isParticipant allows the project owner and the awarded team's owner.
func (c *ChatLogic) isParticipant(project *model.ProjectModel, userId int64) bool {
	if project.UserId == userId {
		return true
	}
	if project.TeamId == 0 {
		return false
	}
	var team model.TeamModel
	if err := c.db.First(&team, project.TeamId).Error; err != nil {
		return false
	}
	return team.OwnerId == userId
}

// PostMessage appends a message to the project chat.
func (c *ChatLogic) PostMessage(projectId, userId int64, body string) (*model.ChatMessageModel, error) {
	if body == "" {
		return nil, validationError("message body is required")
	}

	var project model.ProjectModel
	if err := c.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !c.isParticipant(&project, userId) {
		return nil, ErrForbidden
	}

	message := &model.ChatMessageModel{
		ProjectId: projectId,
		UserId:    userId,
		Body:      body,
	}
	if err := c.db.Create(message).Error; err != nil {
		return nil, err
	}

	// notify the other side, best effort
	if c.publisher != nil {
		recipient := project.UserId
		if userId == project.UserId && project.TeamId != 0 {
			var team model.TeamModel
			if err := c.db.First(&team, project.TeamId).Error; err == nil {
				recipient = team.OwnerId
			}
		}
		if recipient != userId {
			if err := c.publisher.Publish(mq.RoutingKeyNotification, mq.NotificationPayload{
				UserId:    recipient,
				ProjectId: projectId,
				Kind:      "chat_message",
				Message:   "New message on your project",
				CreatedAt: time.Now(),
			}); err != nil {
				logger.Warn("Failed to publish chat notification: %v", err)
			}
		}
	}

	return message, nil
}

// GetMessages lists messages after sinceId, oldest first.
func (c *ChatLogic) GetMessages(projectId, userId, sinceId int64, limit int) ([]model.ChatMessageModel, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var project model.ProjectModel
	if err := c.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !c.isParticipant(&project, userId) {
		return nil, ErrForbidden
	}

	var messages []model.ChatMessageModel
	err := c.db.Where("project_id = ? AND id > ?", projectId, sinceId).
		Order("id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
