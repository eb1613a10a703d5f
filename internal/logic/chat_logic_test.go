package logic

import (
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatParticipantsOnly(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	freelancer := seedUser(t, db, "team@example.com", model.UserRoleFreelancer)
	stranger := seedUser(t, db, "stranger@example.com", model.UserRoleClient)

	project := seedProject(t, db, client.Id, 500000)
	team := seedTeam(t, db, freelancer.Id)
	awardProject(t, db, project, team)

	logic := NewChatLogic(db, nil)

	_, err := logic.PostMessage(project.Id, client.Id, "hello team")
	require.NoError(t, err)
	_, err = logic.PostMessage(project.Id, freelancer.Id, "hello client")
	require.NoError(t, err)

	_, err = logic.PostMessage(project.Id, stranger.Id, "let me in")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = logic.GetMessages(project.Id, stranger.Id, 0, 50)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChatSinceIdCursor(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := NewChatLogic(db, nil)

	first, err := logic.PostMessage(project.Id, client.Id, "one")
	require.NoError(t, err)
	_, err = logic.PostMessage(project.Id, client.Id, "two")
	require.NoError(t, err)
	_, err = logic.PostMessage(project.Id, client.Id, "three")
	require.NoError(t, err)

	all, err := logic.GetMessages(project.Id, client.Id, 0, 50)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Body)

	tail, err := logic.GetMessages(project.Id, client.Id, first.Id, 50)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "two", tail[0].Body)
	assert.Equal(t, "three", tail[1].Body)
}

func TestChatRejectsEmptyBody(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := NewChatLogic(db, nil)

	_, err := logic.PostMessage(project.Id, client.Id, "")
	assert.ErrorIs(t, err, ErrValidation)
}
