package logic

import (
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteIsIdempotent(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	logic := NewTeamLogic(db)

	first, err := logic.Invite(project.Id, team.Id, client.Id, "interested?")
	require.NoError(t, err)

	// double submit returns the same invitation, no duplicate row
	second, err := logic.Invite(project.Id, team.Id, client.Id, "interested?")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	var count int64
	db.Model(&model.TeamInvitationModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestInviteOnlyByProjectOwner(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	other := seedUser(t, db, "other@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	logic := NewTeamLogic(db)

	_, err := logic.Invite(project.Id, team.Id, other.Id, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptInvitationAwardsProject(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	logic := NewTeamLogic(db)

	invitation, err := logic.Invite(project.Id, team.Id, client.Id, "")
	require.NoError(t, err)

	// only the invited team's owner may answer
	assert.ErrorIs(t, logic.RespondInvitation(invitation.Id, client.Id, true), ErrForbidden)

	require.NoError(t, logic.RespondInvitation(invitation.Id, freelancer.Id, true))

	var reloaded model.ProjectModel
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, team.Id, reloaded.TeamId)
	assert.Equal(t, model.ProjectStatusActive, reloaded.Status)

	// invitation cannot be answered twice
	assert.ErrorIs(t, logic.RespondInvitation(invitation.Id, freelancer.Id, false), ErrConflict)
}

func TestSecondAcceptLosesTheRace(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	ownerA := seedUser(t, db, "a@example.com", model.UserRoleFreelancer)
	ownerB := seedUser(t, db, "b@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000)
	teamA := seedTeam(t, db, ownerA.Id)

	teamB := &model.TeamModel{Name: "Bit Shifters", OwnerId: ownerB.Id, IsActive: true}
	require.NoError(t, db.Create(teamB).Error)

	logic := NewTeamLogic(db)
	invA, err := logic.Invite(project.Id, teamA.Id, client.Id, "")
	require.NoError(t, err)
	invB, err := logic.Invite(project.Id, teamB.Id, client.Id, "")
	require.NoError(t, err)

	require.NoError(t, logic.RespondInvitation(invA.Id, ownerA.Id, true))
	assert.ErrorIs(t, logic.RespondInvitation(invB.Id, ownerB.Id, true), ErrConflict)

	var reloaded model.ProjectModel
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, teamA.Id, reloaded.TeamId, "first accepted team keeps the project")
}

func TestDeclineLeavesProjectOpen(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	logic := NewTeamLogic(db)

	invitation, err := logic.Invite(project.Id, team.Id, client.Id, "")
	require.NoError(t, err)
	require.NoError(t, logic.RespondInvitation(invitation.Id, freelancer.Id, false))

	var reloaded model.ProjectModel
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Zero(t, reloaded.TeamId)
	assert.Equal(t, model.ProjectStatusMatching, reloaded.Status)
}

func TestMatchTeamsRanksBySkillOverlap(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	ownerA := seedUser(t, db, "a@example.com", model.UserRoleFreelancer)
	ownerB := seedUser(t, db, "b@example.com", model.UserRoleFreelancer)
	project := seedProject(t, db, client.Id, 500000) // needs react native + go

	strong := seedTeam(t, db, ownerA.Id) // covers both skills
	weak := &model.TeamModel{Name: "Solo Design", Skills: []string{"design"}, OwnerId: ownerB.Id, IsActive: true}
	require.NoError(t, db.Create(weak).Error)

	logic := NewTeamLogic(db)
	loaded := &model.ProjectModel{}
	require.NoError(t, db.First(loaded, project.Id).Error)

	matches, err := logic.MatchTeams(loaded, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, strong.Id, matches[0].Team.Id)
	assert.Greater(t, matches[0].Score.Total, matches[1].Score.Total)
}
