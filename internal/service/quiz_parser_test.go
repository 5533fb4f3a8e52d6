package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuizResponse = `Great progress! Let me see if this is solid.

<quiz>
<question id="1">
What does a variable hold in Python?
<options>
A. A copy of every object
B. A reference to an object
C. The object's type only
D. Nothing until printed
</options>
<answer>B</answer>
</question>
</quiz>

Take your time with it.`

func TestExtractQuiz_NoMarkers(t *testing.T) {
	quiz := ExtractQuiz("A variable is a name bound to a value. Nothing to parse here.")
	assert.Nil(t, quiz)

	assert.Nil(t, ExtractQuiz(""))
}

func TestExtractQuiz_SingleQuestion(t *testing.T) {
	quiz := ExtractQuiz(sampleQuizResponse)
	require.NotNil(t, quiz)

	assert.Equal(t, model.MetadataTypeQuiz, quiz.Type)
	assert.Equal(t, model.QuizStatusPending, quiz.Status)
	assert.Empty(t, quiz.Responses)
	require.Len(t, quiz.Questions, 1)

	q := quiz.Questions[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "What does a variable hold in Python?", q.Text)
	assert.Equal(t, model.QuestionTypeMCQ, q.Type)
	require.Len(t, q.Options, 4)
	assert.Equal(t, "A. A copy of every object", q.Options[0])
	assert.Equal(t, "D. Nothing until printed", q.Options[3])
	assert.Equal(t, "B", q.CorrectAnswer)
}

func TestExtractQuiz_MultipleQuestionsSourceOrder(t *testing.T) {
	content := `<quiz>
<question id="1">
First question?
<options>
A. Yes
B. No
</options>
<answer>A</answer>
</question>
<question id="7">
Second question, numeric gap in the id?
</question>
</quiz>`

	quiz := ExtractQuiz(content)
	require.NotNil(t, quiz)
	require.Len(t, quiz.Questions, 2)

	assert.Equal(t, "q1", quiz.Questions[0].ID)
	assert.Equal(t, model.QuestionTypeMCQ, quiz.Questions[0].Type)

	assert.Equal(t, "q7", quiz.Questions[1].ID)
	assert.Equal(t, model.QuestionTypeShortResponse, quiz.Questions[1].Type)
	assert.Empty(t, quiz.Questions[1].Options)
	assert.Equal(t, "", quiz.Questions[1].CorrectAnswer)
	assert.Equal(t, "Second question, numeric gap in the id?", quiz.Questions[1].Text)
}

func TestExtractQuiz_DuplicateIDsKeepSourceOrder(t *testing.T) {
	content := `<quiz>
<question id="2">later id first</question>
<question id="2">same id again</question>
<question id="1">smallest id last</question>
</quiz>`

	quiz := ExtractQuiz(content)
	require.NotNil(t, quiz)
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, "q2", quiz.Questions[0].ID)
	assert.Equal(t, "later id first", quiz.Questions[0].Text)
	assert.Equal(t, "q2", quiz.Questions[1].ID)
	assert.Equal(t, "q1", quiz.Questions[2].ID)
}

func TestExtractQuiz_EmptyQuizRegion(t *testing.T) {
	assert.Nil(t, ExtractQuiz("<quiz></quiz>"))
	assert.Nil(t, ExtractQuiz("<quiz>\nsome prose, no question tags\n</quiz>"))
	assert.Nil(t, ExtractQuiz(`<quiz><question id="abc">non-numeric id</question></quiz>`))
	assert.Nil(t, ExtractQuiz(`<quiz><question id="1">never closed</quiz>`))
}

func TestExtractQuiz_UnterminatedQuizRegion(t *testing.T) {
	assert.Nil(t, ExtractQuiz(`<quiz><question id="1">q</question>`))
}

func TestExtractQuiz_MissingAnswer(t *testing.T) {
	content := `<quiz>
<question id="3">
Pick one.
<options>
A. One
B. Two
</options>
</question>
</quiz>`

	quiz := ExtractQuiz(content)
	require.NotNil(t, quiz)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "", quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, model.QuestionTypeMCQ, quiz.Questions[0].Type)
}

func TestExtractQuiz_SurroundingProseIgnored(t *testing.T) {
	content := "Intro prose.\n" + sampleQuizResponse + "\nTrailing prose with a stray </quiz> marker."
	quiz := ExtractQuiz(content)
	require.NotNil(t, quiz)
	assert.Len(t, quiz.Questions, 1)
}

// formatQuizMarkup renders a quiz back into the markup the tutor emits.
func formatQuizMarkup(quiz *model.Quiz) string {
	var sb strings.Builder
	sb.WriteString("<quiz>\n")
	for i, q := range quiz.Questions {
		fmt.Fprintf(&sb, "<question id=\"%d\">\n%s\n", i+1, q.Text)
		if len(q.Options) > 0 {
			sb.WriteString("<options>\n")
			for _, opt := range q.Options {
				sb.WriteString(opt + "\n")
			}
			sb.WriteString("</options>\n")
		}
		if q.CorrectAnswer != "" {
			fmt.Fprintf(&sb, "<answer>%s</answer>\n", q.CorrectAnswer)
		}
		sb.WriteString("</question>\n")
	}
	sb.WriteString("</quiz>")
	return sb.String()
}

func TestExtractQuiz_RoundTrip(t *testing.T) {
	original := &model.Quiz{
		Type:   model.MetadataTypeQuiz,
		Status: model.QuizStatusPending,
		Questions: []model.QuizQuestion{
			{
				ID:            "q1",
				Text:          "Which keyword defines a function in Python?",
				Type:          model.QuestionTypeMCQ,
				Options:       []string{"A. func", "B. def", "C. fn", "D. lambda only"},
				CorrectAnswer: "B",
			},
			{
				ID:            "q2",
				Text:          "Explain what a list comprehension does.",
				Type:          model.QuestionTypeShortResponse,
				Options:       []string{},
				CorrectAnswer: "",
			},
		},
		Responses: []model.QuizResponse{},
	}

	parsed := ExtractQuiz(formatQuizMarkup(original))
	require.NotNil(t, parsed)
	assert.Equal(t, original, parsed)
}
