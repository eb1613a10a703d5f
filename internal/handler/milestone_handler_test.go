package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/database"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func openTestDB(t *testing.T, name string, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, database.Migrate(db))
	}
	return db
}

func TestReleaseRespondsWhenCompletionMarkingFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t, "main", true)

	owner := &model.UserModel{Email: "client@example.com", PasswordHash: "x", Name: "Client", Role: model.UserRoleClient}
	require.NoError(t, db.Create(owner).Error)
	teamOwner := &model.UserModel{Email: "team@example.com", PasswordHash: "x", Name: "Team", Role: model.UserRoleFreelancer}
	require.NoError(t, db.Create(teamOwner).Error)

	team := &model.TeamModel{Name: "Pixel Forge", OwnerId: teamOwner.Id, IsActive: true}
	require.NoError(t, db.Create(team).Error)

	project := &model.ProjectModel{
		Title:        "Mobile app build",
		Description:  "Cross-platform app with backend",
		UserId:       owner.Id,
		TeamId:       team.Id,
		BudgetAmount: 500000,
		Currency:     "usd",
		Status:       model.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)

	milestone := &model.ProjectMilestoneModel{
		ProjectId:  project.Id,
		OrderIndex: 0,
		Title:      "Milestone 1",
		Percentage: 30,
		Amount:     150000,
		Status:     model.EscrowStatusPendingApproval,
	}
	require.NoError(t, db.Create(milestone).Error)

	funding := &model.PaymentRecordModel{
		ProjectId:        project.Id,
		MilestoneId:      milestone.Id,
		Kind:             model.PaymentKindFunding,
		Amount:           milestone.Amount,
		Currency:         "usd",
		Status:           model.PaymentStatusSucceeded,
		ProviderIntentId: "pi_1",
		IdempotencyKey:   "k1",
	}
	require.NoError(t, db.Create(funding).Error)

	payClient := payment.NewClient(config.PaymentConfig{BaseURL: "http://127.0.0.1:1"})
	milestoneLogic := logic.NewMilestoneLogic(db, payClient, "usd")

	// completion marking runs against a database with no tables and fails
	broken := openTestDB(t, "broken", false)
	projectLogic, err := logic.NewProjectLogic(broken, []int{30, 40, 30})
	require.NoError(t, err)

	h := NewMilestoneHandler(milestoneLogic, projectLogic)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", milestone.Id)}}
	c.Set(middleware.ContextUserId, owner.Id)

	h.Release(c)

	assert.Equal(t, http.StatusOK, w.Code, "a committed release must not report failure")

	var reloaded model.ProjectMilestoneModel
	require.NoError(t, db.First(&reloaded, milestone.Id).Error)
	assert.Equal(t, model.EscrowStatusReleased, reloaded.Status)
}
