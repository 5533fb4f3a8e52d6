package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageQuizRoundTrip(t *testing.T) {
	quiz := &Quiz{
		Type:   MetadataTypeQuiz,
		Status: QuizStatusPending,
		Questions: []QuizQuestion{
			{ID: "q1", Text: "Pick B.", Type: QuestionTypeMCQ, Options: []string{"A. a", "B. b"}, CorrectAnswer: "B"},
		},
		Responses: []QuizResponse{},
	}

	var msg Message
	require.NoError(t, msg.SetQuiz(quiz))

	got := msg.Quiz()
	require.NotNil(t, got)
	assert.Equal(t, quiz, got)
}

func TestMessageQuizAbsent(t *testing.T) {
	var msg Message
	assert.Nil(t, msg.Quiz())

	msg.Metadata = json.RawMessage(`{"note":"not a quiz"}`)
	assert.Nil(t, msg.Quiz())

	msg.Metadata = json.RawMessage(`{"type":"quiz","questions":[]}`)
	assert.Nil(t, msg.Quiz())

	msg.Metadata = json.RawMessage(`not even json`)
	assert.Nil(t, msg.Quiz())
}

func TestQuizHelpers(t *testing.T) {
	quiz := &Quiz{
		Questions: []QuizQuestion{{ID: "q1"}, {ID: "q2"}},
		Responses: []QuizResponse{
			{QuestionID: "q1", IsCorrect: true},
			{QuestionID: "q2", IsCorrect: false},
		},
	}

	assert.Equal(t, 1, quiz.CorrectCount())
	require.NotNil(t, quiz.Question("q2"))
	assert.Nil(t, quiz.Question("q9"))
}
