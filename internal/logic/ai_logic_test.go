package logic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/ai"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLLM(t *testing.T, reply string) *ai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + reply + `"}}]}`))
	}))
	t.Cleanup(srv.Close)
	return ai.NewClient(config.AIConfig{BaseURL: srv.URL, Model: "test-model"})
}

func brokenLLM(t *testing.T) *ai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	t.Cleanup(srv.Close)
	return ai.NewClient(config.AIConfig{BaseURL: srv.URL, Model: "test-model"})
}

func TestGenerateBioUsesProviderText(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com", model.UserRoleFreelancer)
	team := seedTeam(t, db, owner.Id)
	logic := NewAILogic(db, fakeLLM(t, "We build delightful web apps."))

	bio, err := logic.GenerateBio(context.Background(), team.Id, owner.Id)
	require.NoError(t, err)
	assert.Equal(t, "We build delightful web apps.", bio)
}

func TestGenerateBioFallsBackOnProviderError(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com", model.UserRoleFreelancer)
	team := seedTeam(t, db, owner.Id)
	logic := NewAILogic(db, brokenLLM(t))

	bio, err := logic.GenerateBio(context.Background(), team.Id, owner.Id)
	require.NoError(t, err, "provider failures must not surface to the page")
	assert.Equal(t, fallbackBio, bio)
}

func TestGenerateBioOwnerOnly(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com", model.UserRoleFreelancer)
	other := seedUser(t, db, "other@example.com", model.UserRoleFreelancer)
	team := seedTeam(t, db, owner.Id)
	logic := NewAILogic(db, fakeLLM(t, "bio"))

	_, err := logic.GenerateBio(context.Background(), team.Id, other.Id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProjectInsightsOwnerOnly(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "client@example.com", model.UserRoleClient)
	other := seedUser(t, db, "other@example.com", model.UserRoleClient)
	project := seedProject(t, db, client.Id, 500000)
	logic := NewAILogic(db, fakeLLM(t, "Looking good."))

	_, err := logic.ProjectInsights(context.Background(), project.Id, other.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	insights, err := logic.ProjectInsights(context.Background(), project.Id, client.Id)
	require.NoError(t, err)
	assert.Equal(t, "Looking good.", insights)
}

func TestChatTurnFallsBackOnProviderError(t *testing.T) {
	db := testDB(t)
	logic := NewAILogic(db, brokenLLM(t))

	answer, err := logic.ChatTurn(context.Background(), nil, "How does escrow work?")
	require.NoError(t, err)
	assert.Equal(t, fallbackChat, answer)
}

func TestChatTurnRequiresQuestion(t *testing.T) {
	db := testDB(t)
	logic := NewAILogic(db, fakeLLM(t, "hi"))

	_, err := logic.ChatTurn(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOnboardingChecklistFallsBackToRoleList(t *testing.T) {
	db := testDB(t)
	freelancer := seedUser(t, db, "f@example.com", model.UserRoleFreelancer)
	logic := NewAILogic(db, brokenLLM(t))

	items, err := logic.OnboardingChecklist(context.Background(), freelancer.Id)
	require.NoError(t, err)
	assert.Equal(t, checklistForRole(model.UserRoleFreelancer), items)
}

func TestOnboardingChecklistSplitsProviderLines(t *testing.T) {
	db := testDB(t)
	client := seedUser(t, db, "c@example.com", model.UserRoleClient)
	logic := NewAILogic(db, fakeLLM(t, `Post your project\nMeet your matches`))

	items, err := logic.OnboardingChecklist(context.Background(), client.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Post your project", "Meet your matches"}, items)
}

func TestSummarizeFileWithoutTextIsStatic(t *testing.T) {
	db := testDB(t)
	logic := NewAILogic(db, brokenLLM(t))

	summary, err := logic.SummarizeFile(context.Background(), &model.ProjectFileModel{FileName: "brief.pdf"}, "")
	require.NoError(t, err)
	assert.Equal(t, fallbackFileSummary, summary)
}
