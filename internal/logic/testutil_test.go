package logic

import (
	"fmt"
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/database"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// testDB opens an isolated in-memory database migrated with the full
// schema. The shared cache keeps every pooled connection on the same
// database for the lifetime of the test.
func testDB(t *testing.T) *gorm.DB {
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

// seedUser inserts one account.
func seedUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.UserModel {
	t.Helper()
	user := &model.UserModel{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedProject inserts a project with the standard three-tranche split and
// one attached file, owned by userId.
func seedProject(t *testing.T, db *gorm.DB, userId int64, budget int64) *model.ProjectModel {
	t.Helper()

	project := &model.ProjectModel{
		Title:          "Mobile app build",
		Description:    "Cross-platform app with backend",
		Industry:       "technology",
		SkillsRequired: []string{"react native", "go"},
		BudgetAmount:   budget,
		Currency:       "usd",
		Status:         model.ProjectStatusMatching,
		UserId:         userId,
	}
	require.NoError(t, db.Create(project).Error)

	for i, amount := range SplitAmount(budget, []int{30, 40, 30}) {
		milestone := &model.ProjectMilestoneModel{
			ProjectId:  project.Id,
			OrderIndex: i,
			Title:      fmt.Sprintf("Milestone %d", i+1),
			Percentage: []int{30, 40, 30}[i],
			Amount:     amount,
			Status:     model.EscrowStatusCreated,
		}
		require.NoError(t, db.Create(milestone).Error)
	}
	return project
}

// seedTeam inserts an active team owned by ownerId.
func seedTeam(t *testing.T, db *gorm.DB, ownerId int64) *model.TeamModel {
	t.Helper()
	team := &model.TeamModel{
		Name:     "Pixel Forge",
		Skills:   []string{"react native", "go", "design"},
		OwnerId:  ownerId,
		IsActive: true,
	}
	require.NoError(t, db.Create(team).Error)
	return team
}

// awardProject links a team to a project as the accepted team.
func awardProject(t *testing.T, db *gorm.DB, project *model.ProjectModel, team *model.TeamModel) {
	t.Helper()
	require.NoError(t, db.Model(project).Updates(map[string]interface{}{
		"team_id": team.Id,
		"status":  model.ProjectStatusActive,
	}).Error)
	project.TeamId = team.Id
}
