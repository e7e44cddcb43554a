package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiinterviewer-backend/internal/models"
)

func createTestOwner(t *testing.T) int64 {
	t.Helper()
	user := testUser("owner", "owner@example.com")
	require.NoError(t, NewUserRepo().Create(user))
	return user.ID
}

func TestInterviewRepo_CreateAndList(t *testing.T) {
	openTestDB(t)
	repo := NewInterviewRepo()
	userID := createTestOwner(t)

	require.NoError(t, repo.Create(userID, &models.InterviewInfo{
		InterviewID:   "iv-1",
		CandidateName: "Alice",
		Company:       "Acme",
		Role:          "Engineer",
		InterviewType: models.TypeTechnical,
		Skills:        "Go, SQL",
		Stage:         models.StageSetup,
	}))

	interviews, err := repo.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, "iv-1", interviews[0].InterviewID)
	assert.Equal(t, models.StageSetup, interviews[0].Stage)
	assert.Nil(t, interviews[0].StartTime)

	// Other users see nothing
	other, err := repo.ListByUser(userID + 1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInterviewRepo_UpdateSetup(t *testing.T) {
	openTestDB(t)
	repo := NewInterviewRepo()
	userID := createTestOwner(t)

	require.NoError(t, repo.Create(userID, &models.InterviewInfo{
		InterviewID: "iv-2",
		Stage:       models.StageSetup,
	}))

	now := time.Now()
	err := repo.UpdateSetup("iv-2", &models.InterviewInfo{
		InterviewID:   "iv-2",
		CandidateName: "Bob",
		Company:       "Globex",
		Role:          "Analyst",
		InterviewType: models.TypeBehavioral,
		Skills:        "Communication",
		Stage:         models.StageInterview,
		StartTime:     &now,
	}, "prefers scenario questions")
	require.NoError(t, err)

	interviews, err := repo.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, models.StageInterview, interviews[0].Stage)
	assert.Equal(t, "Globex", interviews[0].Company)
	require.NotNil(t, interviews[0].StartTime)
}

func TestInterviewRepo_UpdateSetup_NotFound(t *testing.T) {
	openTestDB(t)
	repo := NewInterviewRepo()

	err := repo.UpdateSetup("missing", &models.InterviewInfo{InterviewID: "missing"}, "")
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestInterviewRepo_MessagesOrder(t *testing.T) {
	openTestDB(t)
	repo := NewInterviewRepo()
	userID := createTestOwner(t)

	require.NoError(t, repo.Create(userID, &models.InterviewInfo{
		InterviewID: "iv-3",
		Stage:       models.StageSetup,
	}))

	turns := []models.Message{
		{Role: models.SpeakerAssistant, Message: "Hello, are you ready?"},
		{Role: models.SpeakerUser, Message: "Yes, let's go."},
		{Role: models.SpeakerAssistant, Message: "Tell me about yourself."},
	}
	for _, msg := range turns {
		require.NoError(t, repo.AppendMessage("iv-3", msg))
	}

	got, err := repo.Messages("iv-3")
	require.NoError(t, err)
	assert.Equal(t, turns, got)
}

func TestInterviewRepo_DeleteCascades(t *testing.T) {
	openTestDB(t)
	repo := NewInterviewRepo()
	userID := createTestOwner(t)

	require.NoError(t, repo.Create(userID, &models.InterviewInfo{
		InterviewID: "iv-4",
		Stage:       models.StageSetup,
	}))
	require.NoError(t, repo.AppendMessage("iv-4", models.Message{
		Role: models.SpeakerAssistant, Message: "hi",
	}))

	require.NoError(t, repo.Delete("iv-4"))

	interviews, err := repo.ListByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, interviews)

	messages, err := repo.Messages("iv-4")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSupportRepo_PerUserConversations(t *testing.T) {
	openTestDB(t)
	repo := NewSupportRepo()
	userID := createTestOwner(t)

	require.NoError(t, repo.Append(userID, models.Message{Role: models.SpeakerUser, Message: "How long is an interview?"}))
	require.NoError(t, repo.Append(userID, models.Message{Role: models.SpeakerAssistant, Message: "Interviews last exactly 15 minutes."}))

	got, err := repo.Messages(userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.SpeakerUser, got[0].Role)
	assert.Equal(t, models.SpeakerAssistant, got[1].Role)

	other, err := repo.Messages(userID + 1)
	require.NoError(t, err)
	assert.Empty(t, other)
}
