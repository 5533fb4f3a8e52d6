package model

const (
	MetadataTypeQuiz = "quiz"

	QuizStatusPending   = "pending"
	QuizStatusCompleted = "completed"

	QuestionTypeMCQ           = "mcq"
	QuestionTypeShortResponse = "short_response"
)

// Quiz is the structured form of a quiz embedded in a tutor response. It is
// persisted as message metadata and never exists without at least one
// question.
type Quiz struct {
	Type      string         `json:"type"`
	Questions []QuizQuestion `json:"questions"`
	Status    string         `json:"status"`
	Responses []QuizResponse `json:"responses"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type QuizResponse struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
}

// Question looks up a question by id, nil if absent.
func (q *Quiz) Question(id string) *QuizQuestion {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// CorrectCount reports how many recorded responses are flagged correct.
func (q *Quiz) CorrectCount() int {
	n := 0
	for _, r := range q.Responses {
		if r.IsCorrect {
			n++
		}
	}
	return n
}
