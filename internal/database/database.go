package database

import (
	"fmt"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate runs auto-migration for every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserModel{},
		&model.ProjectModel{},
		&model.ProjectFileModel{},
		&model.ProjectMilestoneModel{},
		&model.PaymentRecordModel{},
		&model.TeamModel{},
		&model.TeamMemberModel{},
		&model.TeamInvitationModel{},
		&model.WebhookEventModel{},
		&model.ChatMessageModel{},
		&model.EmailCampaignModel{},
		&model.EmailLogModel{},
	)
}
