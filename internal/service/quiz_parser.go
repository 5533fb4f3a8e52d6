package service

import (
	"strings"

	"github.com/dvitale199/blossom/internal/model"
)

// Quiz markup markers. The tutor system prompt instructs the model to emit
// exactly this sublanguage, so the scanner matches it literally.
const (
	quizOpen           = "<quiz>"
	quizClose          = "</quiz>"
	questionOpenPrefix = `<question id="`
	questionOpenClose  = `">`
	questionClose      = "</question>"
	optionsOpen        = "<options>"
	optionsClose       = "</options>"
	answerOpen         = "<answer>"
	answerClose        = "</answer>"
)

// ExtractQuiz scans a tutor response for an embedded quiz region and returns
// its structured form, or nil when no quiz is present. A quiz region that
// yields zero parseable questions counts as no quiz. Malformed markup never
// produces an error; it degrades to nil.
func ExtractQuiz(content string) *model.Quiz {
	body, ok := innerRegion(content, quizOpen, quizClose)
	if !ok {
		return nil
	}

	var questions []model.QuizQuestion
	for {
		id, qBody, rest, found := nextQuestion(body)
		if !found {
			break
		}
		questions = append(questions, parseQuestion(id, qBody))
		body = rest
	}

	if len(questions) == 0 {
		return nil
	}

	return &model.Quiz{
		Type:      model.MetadataTypeQuiz,
		Questions: questions,
		Status:    model.QuizStatusPending,
		Responses: []model.QuizResponse{},
	}
}

// innerRegion returns the text between the first open marker and the first
// close marker after it, i.e. the shortest enclosed span.
func innerRegion(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(s[start:], close)
	if end < 0 {
		return "", false
	}
	return s[start : start+end], true
}

// nextQuestion locates the next well-formed question region: an open marker
// with a purely numeric id attribute and a matching close marker. Candidates
// that fail either condition are skipped, not errors.
func nextQuestion(s string) (id, body, rest string, found bool) {
	for {
		start := strings.Index(s, questionOpenPrefix)
		if start < 0 {
			return "", "", "", false
		}
		s = s[start+len(questionOpenPrefix):]

		n := 0
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		if n == 0 || !strings.HasPrefix(s[n:], questionOpenClose) {
			continue
		}

		id = s[:n]
		after := s[n+len(questionOpenClose):]
		end := strings.Index(after, questionClose)
		if end < 0 {
			s = after
			continue
		}
		return id, after[:end], after[end+len(questionClose):], true
	}
}

func parseQuestion(id, body string) model.QuizQuestion {
	q := model.QuizQuestion{
		ID:      "q" + id,
		Options: []string{},
	}

	// The prompt is everything up to the options marker; without one, the
	// whole region body is the prompt.
	if optIdx := strings.Index(body, optionsOpen); optIdx >= 0 {
		q.Text = strings.TrimSpace(body[:optIdx])
		if optsBody, ok := innerRegion(body, optionsOpen, optionsClose); ok {
			for _, line := range strings.Split(optsBody, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					q.Options = append(q.Options, line)
				}
			}
		}
	} else {
		q.Text = strings.TrimSpace(body)
	}

	if ans, ok := innerRegion(body, answerOpen, answerClose); ok {
		q.CorrectAnswer = strings.TrimSpace(ans)
	}

	if len(q.Options) > 0 {
		q.Type = model.QuestionTypeMCQ
	} else {
		q.Type = model.QuestionTypeShortResponse
	}

	return q
}
