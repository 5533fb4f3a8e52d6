package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInvoker struct {
	text string
	err  error

	gotSystem   string
	gotMessages []ChatMessage
}

func (m *mockInvoker) Invoke(_ context.Context, system string, messages []ChatMessage) (string, error) {
	m.gotSystem = system
	m.gotMessages = messages
	return m.text, m.err
}

func testSpace() *model.Space {
	return &model.Space{
		Name:  "Python basics",
		Topic: "Python programming",
		Goal:  "Understand the basics of Python",
	}
}

func userMsg(content string) model.Message {
	return model.Message{Role: model.RoleUser, Content: content}
}

func assistantMsg(content string) model.Message {
	return model.Message{Role: model.RoleAssistant, Content: content}
}

func quizMsg(t *testing.T, quiz *model.Quiz) model.Message {
	t.Helper()
	msg := model.Message{Role: model.RoleAssistant, Content: "quiz time"}
	require.NoError(t, msg.SetQuiz(quiz))
	return msg
}

func TestBuildPrompt_ContainsTopicAndGoal(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	prompt := svc.BuildPrompt(testSpace(), nil, nil)

	assert.Contains(t, prompt, "Python programming")
	assert.Contains(t, prompt, "Understand the basics of Python")
	assert.Contains(t, prompt, "You are Blossom")
}

func TestBuildPrompt_GoalFallback(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})
	space := testSpace()
	space.Goal = ""

	prompt := svc.BuildPrompt(space, nil, nil)

	assert.Contains(t, prompt, "Goal: Explore and understand the topic")
}

func TestBuildPrompt_EmptyHistoryPlaceholder(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	prompt := svc.BuildPrompt(testSpace(), nil, nil)

	assert.Contains(t, prompt, "(No previous messages)")
	assert.Contains(t, prompt, "(No quizzes yet)")
}

func TestBuildPrompt_WindowIsLastTwenty(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	var history []model.Message
	for i := 0; i < 25; i++ {
		history = append(history, userMsg(fmt.Sprintf("turn-%02d", i)))
	}

	prompt := svc.BuildPrompt(testSpace(), history, nil)

	for i := 0; i < 5; i++ {
		assert.NotContains(t, prompt, fmt.Sprintf("turn-%02d", i))
	}
	for i := 5; i < 25; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("turn-%02d", i))
	}

	// Chronological order is preserved within the window.
	assert.Less(t,
		strings.Index(prompt, "turn-05"),
		strings.Index(prompt, "turn-24"))
}

func TestBuildPrompt_RoleLabels(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	history := []model.Message{
		userMsg("What is a variable?"),
		assistantMsg("A variable is a name bound to a value."),
		{Role: model.RoleSystem, Content: "session resumed"},
	}

	prompt := svc.BuildPrompt(testSpace(), history, nil)

	assert.Contains(t, prompt, "User: What is a variable?")
	assert.Contains(t, prompt, "Tutor: A variable is a name bound to a value.")
	// System turns are windowed too; they render with the tutor label.
	assert.Contains(t, prompt, "Tutor: session resumed")
}

func TestBuildPrompt_TruncatesLongTurns(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	long := strings.Repeat("a", 600)
	prompt := svc.BuildPrompt(testSpace(), []model.Message{userMsg(long)}, nil)

	assert.Contains(t, prompt, strings.Repeat("a", 500)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", 501))
}

func TestBuildPrompt_ShortTurnsUnmodified(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	exact := strings.Repeat("b", 500)
	prompt := svc.BuildPrompt(testSpace(), []model.Message{userMsg(exact)}, nil)

	assert.Contains(t, prompt, "User: "+exact+"\n")
	assert.NotContains(t, prompt, exact+"...")
}

func TestBuildPrompt_QuizSummaryLastThree(t *testing.T) {
	svc := NewTutorService(&mockInvoker{})

	quizzes := make([]*model.Quiz, 0, 4)
	for i := 0; i < 4; i++ {
		quizzes = append(quizzes, &model.Quiz{
			Type:   model.MetadataTypeQuiz,
			Status: model.QuizStatusCompleted,
			Questions: []model.QuizQuestion{
				{ID: "q1"}, {ID: "q2"}, {ID: "q3"},
			},
			Responses: []model.QuizResponse{
				{QuestionID: "q1", IsCorrect: i%2 == 0},
				{QuestionID: "q2", IsCorrect: true},
			},
		})
	}

	prompt := svc.BuildPrompt(testSpace(), nil, quizzes)

	// Four quizzes in, three summary lines out.
	assert.Equal(t, 3, strings.Count(prompt, "- Quiz: "))
	assert.Contains(t, prompt, "- Quiz: 2/3 correct")
	assert.Contains(t, prompt, "- Quiz: 1/3 correct")
}

func TestGenerateResponse_FiltersRolesAndAppendsUserMessage(t *testing.T) {
	invoker := &mockInvoker{text: "Let's keep going."}
	svc := NewTutorService(invoker)

	history := []model.Message{
		userMsg("What is a variable in Python?"),
		{Role: model.RoleSystem, Content: "internal note"},
		assistantMsg("A variable is a container..."),
	}

	_, _, err := svc.GenerateResponse(context.Background(), testSpace(), history, "Quiz me")
	require.NoError(t, err)

	require.Len(t, invoker.gotMessages, 3)
	assert.Equal(t, ChatMessage{Role: model.RoleUser, Content: "What is a variable in Python?"}, invoker.gotMessages[0])
	assert.Equal(t, ChatMessage{Role: model.RoleAssistant, Content: "A variable is a container..."}, invoker.gotMessages[1])
	assert.Equal(t, ChatMessage{Role: model.RoleUser, Content: "Quiz me"}, invoker.gotMessages[2])

	assert.Contains(t, invoker.gotSystem, "Python programming")
}

func TestGenerateResponse_QuizTurn(t *testing.T) {
	invoker := &mockInvoker{text: sampleQuizResponse}
	svc := NewTutorService(invoker)

	history := []model.Message{
		userMsg("What is a variable in Python?"),
		assistantMsg("A variable is a container..."),
	}

	text, quiz, err := svc.GenerateResponse(context.Background(), testSpace(), history, "Quiz me")
	require.NoError(t, err)

	assert.Equal(t, sampleQuizResponse, text)
	require.NotNil(t, quiz)
	assert.Equal(t, model.QuizStatusPending, quiz.Status)
	assert.Empty(t, quiz.Responses)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "B", quiz.Questions[0].CorrectAnswer)
}

func TestGenerateResponse_PlainTurnHasNoQuiz(t *testing.T) {
	invoker := &mockInvoker{text: "A variable is a name bound to a value."}
	svc := NewTutorService(invoker)

	text, quiz, err := svc.GenerateResponse(context.Background(), testSpace(), nil, "What is a variable?")
	require.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NotEmpty(t, text)
}

func TestGenerateResponse_InvocationFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	svc := NewTutorService(&mockInvoker{err: cause})

	_, quiz, err := svc.GenerateResponse(context.Background(), testSpace(), nil, "hello")
	require.Error(t, err)
	assert.Nil(t, quiz)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestGenerateResponse_QuizHistoryFromMetadata(t *testing.T) {
	invoker := &mockInvoker{text: "Nice work so far."}
	svc := NewTutorService(invoker)

	priorQuiz := &model.Quiz{
		Type:      model.MetadataTypeQuiz,
		Status:    model.QuizStatusCompleted,
		Questions: []model.QuizQuestion{{ID: "q1"}, {ID: "q2"}},
		Responses: []model.QuizResponse{
			{QuestionID: "q1", IsCorrect: true},
			{QuestionID: "q2", IsCorrect: false},
		},
	}

	history := []model.Message{
		userMsg("Quiz me"),
		quizMsg(t, priorQuiz),
		userMsg("How did I do?"),
	}

	_, _, err := svc.GenerateResponse(context.Background(), testSpace(), history, "What's next?")
	require.NoError(t, err)

	assert.Contains(t, invoker.gotSystem, "- Quiz: 1/2 correct")
}
