package logic

import (
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFile(t *testing.T, db *gorm.DB, userId int64) *model.ProjectFileModel {
	t.Helper()
	file := &model.ProjectFileModel{
		UserId:      userId,
		FileName:    "brief.pdf",
		StoredName:  "stored-" + t.Name() + ".pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
		PublicURL:   "/files/stored.pdf",
	}
	require.NoError(t, db.Create(file).Error)
	return file
}

func testProjectLogic(t *testing.T, db *gorm.DB) *ProjectLogic {
	t.Helper()
	logic, err := NewProjectLogic(db, []int{30, 40, 30})
	require.NoError(t, err)
	return logic
}

func TestCreateProjectBuildsMilestoneTranches(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	file := seedFile(t, db, client.Id)
	logic := testProjectLogic(t, db)

	project, err := logic.CreateProject(client.Id, &CreateProjectInput{
		Title:       "Analytics dashboard",
		Description: "Reporting dashboard over existing warehouse",
		Industry:    "technology",
		Skills:      []string{"go", "sql"},
		Budget:      "$10,000",
		FileIds:     []int64{file.Id},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000000), project.BudgetAmount)
	assert.Equal(t, model.ProjectStatusMatching, project.Status)
	require.Len(t, project.Milestones, 3)

	var sum int64
	for i, m := range project.Milestones {
		assert.Equal(t, i, m.OrderIndex)
		assert.Equal(t, model.EscrowStatusCreated, m.Status)
		sum += m.Amount
	}
	assert.Equal(t, project.BudgetAmount, sum, "tranches must sum to the budget")
	assert.Equal(t, []int{30, 40, 30}, []int{
		project.Milestones[0].Percentage,
		project.Milestones[1].Percentage,
		project.Milestones[2].Percentage,
	})

	require.Len(t, project.Files, 1)
	assert.Equal(t, project.Id, project.Files[0].ProjectId)
}

func TestCreateProjectRollsBackOnBadFile(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	other := seedUser(t, db, "other@example.com", model.UserRoleClient)
	foreignFile := seedFile(t, db, other.Id)
	logic := testProjectLogic(t, db)

	_, err := logic.CreateProject(client.Id, &CreateProjectInput{
		Title:       "Analytics dashboard",
		Description: "Reporting dashboard",
		Budget:      "5000",
		FileIds:     []int64{foreignFile.Id},
	})
	assert.ErrorIs(t, err, ErrValidation)

	// nothing may survive the rollback
	var projects, milestones int64
	db.Model(&model.ProjectModel{}).Count(&projects)
	db.Model(&model.ProjectMilestoneModel{}).Count(&milestones)
	assert.Zero(t, projects)
	assert.Zero(t, milestones)
}

func TestCreateProjectValidation(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	file := seedFile(t, db, client.Id)
	logic := testProjectLogic(t, db)

	cases := []CreateProjectInput{
		{Description: "d", Budget: "100", FileIds: []int64{file.Id}},     // no title
		{Title: "t", Budget: "100", FileIds: []int64{file.Id}},           // no description
		{Title: "t", Description: "d", Budget: "100"},                    // no files
		{Title: "t", Description: "d", FileIds: []int64{file.Id}},        // no budget
		{Title: "t", Description: "d", Budget: "$0", FileIds: []int64{file.Id}},
	}
	for i := range cases {
		_, err := logic.CreateProject(client.Id, &cases[i])
		assert.ErrorIs(t, err, ErrValidation, "case %d", i)
	}
}

func TestCancelProjectRefusedOnceFunded(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := testProjectLogic(t, db)

	var m model.ProjectMilestoneModel
	require.NoError(t, db.Where("project_id = ?", project.Id).Order("order_index ASC").First(&m).Error)
	require.NoError(t, db.Model(&m).Update("status", model.EscrowStatusFunded).Error)

	assert.ErrorIs(t, logic.CancelProject(project.Id, client.Id), ErrConflict)
}

func TestCancelProjectOwnerOnly(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	other := seedUser(t, db, "other@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := testProjectLogic(t, db)

	assert.ErrorIs(t, logic.CancelProject(project.Id, other.Id), ErrForbidden)
	require.NoError(t, logic.CancelProject(project.Id, client.Id))

	reloaded, err := logic.GetProject(project.Id)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusCancelled, reloaded.Status)
}

func TestMarkCompletedIfDone(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := testProjectLogic(t, db)

	require.NoError(t, logic.MarkCompletedIfDone(project.Id))
	reloaded, _ := logic.GetProject(project.Id)
	assert.Equal(t, model.ProjectStatusMatching, reloaded.Status, "unreleased milestones keep the project open")

	require.NoError(t, db.Model(&model.ProjectMilestoneModel{}).
		Where("project_id = ?", project.Id).
		Update("status", model.EscrowStatusReleased).Error)

	require.NoError(t, logic.MarkCompletedIfDone(project.Id))
	reloaded, _ = logic.GetProject(project.Id)
	assert.Equal(t, model.ProjectStatusCompleted, reloaded.Status)
}

func TestGetFileAccessRules(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	stranger := seedUser(t, db, "stranger@example.com", model.UserRoleClient)
	logic := testProjectLogic(t, db)

	file := seedFile(t, db, client.Id)

	// uploader always reads their own file
	_, err := logic.GetFile(file.Id, client.Id)
	require.NoError(t, err)

	// unattached files are private to the uploader
	_, err = logic.GetFile(file.Id, freelancer.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)
	require.NoError(t, db.Model(file).Update("project_id", project.Id).Error)

	// the awarded team's owner can read attached briefs
	_, err = logic.GetFile(file.Id, freelancer.Id)
	require.NoError(t, err)

	_, err = logic.GetFile(file.Id, stranger.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = logic.GetFile(99999, client.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}
