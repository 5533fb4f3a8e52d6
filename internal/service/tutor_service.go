package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/dvitale199/blossom/pkg/monitoring"
)

// ErrGenerationFailed marks a tutor turn that failed because the model
// provider could not produce a response. The HTTP layer maps it to 502.
var ErrGenerationFailed = errors.New("failed to generate tutor response")

const (
	// Bounds of the context window injected into the system prompt.
	contextWindowSize = 20
	maxTurnChars      = 500
	quizHistoryWindow = 3

	noMessagesPlaceholder = "(No previous messages)"
	noQuizzesPlaceholder  = "(No quizzes yet)"

	goalFallback = "Explore and understand the topic"
)

const tutorSystemPrompt = `You are Blossom, an AI tutor. Your job is to help the user genuinely understand
the topic they're learning—not just give them answers.

## How You Behave

**You teach through dialogue, not lectures.**
- Ask questions to understand what they know
- Explain concepts, then check understanding
- Use analogies and examples
- When they're confused, try a different angle

**You keep them thinking.**
- Don't just answer—ask "why do you think that?"
- Have them explain things back to you
- Challenge assumptions: "what would happen if...?"
- Praise effort and good reasoning, not just correct answers

**You validate understanding with quizzes.**
- After covering 2-3 concepts, check if it stuck
- Say "Let me see if this is solid" and ask 2-4 questions
- Questions should test understanding, not memorization
- Based on results: move on, or reteach differently

**You adapt.**
- If an explanation doesn't land, don't repeat it—try something else
- Notice when they're struggling vs. breezing through
- Adjust depth and pace accordingly

**You stay focused but not rigid.**
- Keep the learning goal in mind
- Tangents are okay if they help understanding
- Gently redirect if they go too far off track

## Quiz Format

When you quiz, use this format so the system can parse it:

<quiz>
<question id="1">
What would happen to X if Y changed?
<options>
A. First option
B. Second option
C. Third option
D. Fourth option
</options>
<answer>B</answer>
</question>
</quiz>

After they answer, evaluate and either:
- Confirm understanding and move on
- Identify the gap and reteach with a different approach

## What NOT To Do

- Don't lecture for paragraphs without engagement
- Don't accept "I get it" without demonstration
- Don't repeat failed explanations
- Don't be condescending or artificially cheerful
- Don't skip foundations to get to "interesting" stuff
- Don't give up if they're struggling—find another way in

## Remember

Your success is measured by whether they actually understand, not by how
much you covered or how smart you sounded.`

// ModelInvoker is the model-invocation collaborator: system prompt plus an
// ordered transcript in, response text or failure out. No retry semantics.
type ModelInvoker interface {
	Invoke(ctx context.Context, system string, messages []ChatMessage) (string, error)
}

type ChatMessage struct {
	Role    string
	Content string
}

// TutorService drives one tutoring turn: assemble context, call the model,
// extract a quiz if the response embeds one. It performs no persistence.
type TutorService struct {
	invoker ModelInvoker
}

func NewTutorService(invoker ModelInvoker) *TutorService {
	return &TutorService{invoker: invoker}
}

// BuildPrompt renders the full system prompt for a model call: the fixed
// tutor instructions plus the learning context (topic, goal, trailing
// conversation window, trailing quiz outcomes). Pure function of its inputs.
func (s *TutorService) BuildPrompt(space *model.Space, messages []model.Message, quizHistory []*model.Quiz) string {
	goal := space.Goal
	if goal == "" {
		goal = goalFallback
	}

	window := messages
	if len(window) > contextWindowSize {
		window = window[len(window)-contextWindowSize:]
	}

	return fmt.Sprintf(`%s

<learning_context>
Topic: %s
Goal: %s

Recent conversation:
%s

Quiz history this session:
%s
</learning_context>

Continue the tutoring session. Remember where you left off.
`, tutorSystemPrompt, space.Topic, goal, formatMessages(window), formatQuizSummary(quizHistory))
}

// GenerateResponse runs one tutor turn. The new user message is not part of
// messages yet; it is appended to the transcript sent to the model. Returns
// the raw response text and the embedded quiz, if any.
func (s *TutorService) GenerateResponse(ctx context.Context, space *model.Space, messages []model.Message, userMessage string) (string, *model.Quiz, error) {
	system := s.BuildPrompt(space, messages, collectQuizHistory(messages))

	chat := make([]ChatMessage, 0, len(messages)+1)
	for _, msg := range messages {
		if msg.Role == model.RoleUser || msg.Role == model.RoleAssistant {
			chat = append(chat, ChatMessage{Role: msg.Role, Content: msg.Content})
		}
	}
	chat = append(chat, ChatMessage{Role: model.RoleUser, Content: userMessage})

	text, err := s.invoker.Invoke(ctx, system, chat)
	if err != nil {
		monitoring.TutorTurnCounter.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	quiz := ExtractQuiz(text)
	if quiz != nil {
		monitoring.QuizExtractedCounter.Inc()
	}
	monitoring.TutorTurnCounter.WithLabelValues("ok").Inc()

	return text, quiz, nil
}

// collectQuizHistory gathers quiz artifacts from prior tutor messages in
// chronological order, for the summary section of the context.
func collectQuizHistory(messages []model.Message) []*model.Quiz {
	var history []*model.Quiz
	for i := range messages {
		if quiz := messages[i].Quiz(); quiz != nil {
			history = append(history, quiz)
		}
	}
	return history
}

func formatMessages(messages []model.Message) string {
	if len(messages) == 0 {
		return noMessagesPlaceholder
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		role := "Tutor"
		if msg.Role == model.RoleUser {
			role = "User"
		}
		lines = append(lines, role+": "+truncate(msg.Content, maxTurnChars))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatQuizSummary(history []*model.Quiz) string {
	if len(history) == 0 {
		return noQuizzesPlaceholder
	}

	if len(history) > quizHistoryWindow {
		history = history[len(history)-quizHistoryWindow:]
	}

	lines := make([]string, 0, len(history))
	for _, quiz := range history {
		lines = append(lines, fmt.Sprintf("- Quiz: %d/%d correct", quiz.CorrectCount(), len(quiz.Questions)))
	}
	return strings.Join(lines, "\n")
}
