package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"alfredoptarigan/interview-assessor/internal/logger"
	"alfredoptarigan/interview-assessor/internal/models"
)

const (
	DefaultRole = "Full Stack"

	questionSetSize            = 6
	questionGenerationAttempts = 2
	questionMaxTokens          = 1000
	evaluationMaxTokens        = 500

	heuristicWordsPerPoint = 10
	minHeuristicScore      = 1
	maxHeuristicScore      = 10

	NoAnswerFeedback    = "No answer provided."
	HeuristicFeedback   = "Fallback heuristic score (AI unavailable)."
	ParseFailedFeedback = "AI response parse failed, fallback used."
	parseFailedScore    = 5
)

var answerEvaluationSchema = jsonschema.MustCompileString("answer_evaluation.json", `{
	"type": "object",
	"required": ["score", "feedback"],
	"properties": {
		"score": {"type": "integer", "minimum": 0, "maximum": 10},
		"feedback": {"type": "string"}
	}
}`)

type QuestionSource string

const (
	QuestionsGenerated QuestionSource = "generated"
	QuestionsFallback  QuestionSource = "fallback"
)

// QuestionSet is always six questions; Source says whether the model produced them.
// Generated elements are passed through verbatim, whatever keys or types they carry.
type QuestionSet struct {
	Questions []json.RawMessage
	Source    QuestionSource
	Attempts  int
}

type InterviewService interface {
	GenerateQuestions(ctx context.Context, role string) QuestionSet
	EvaluateAnswer(ctx context.Context, req models.EvaluateAnswerRequest) models.AnswerEvaluation
}

type interviewService struct {
	generator     Generator
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewInterviewService(generator Generator, log *zap.Logger) InterviewService {
	if log == nil {
		log = zap.NewNop()
	}
	return &interviewService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// GenerateQuestions implements InterviewService.
func (s *interviewService) GenerateQuestions(ctx context.Context, role string) QuestionSet {
	if strings.TrimSpace(role) == "" {
		role = DefaultRole
	}
	prompt := s.promptBuilder.BuildQuestionGenerationPrompt(role)

	attempt := 0
	for attempt < questionGenerationAttempts {
		if ctx.Err() != nil {
			break
		}
		attempt++

		result := s.generator.Generate(ctx, prompt, questionMaxTokens)
		if !result.OK() {
			s.log.Warn("questions.generation_failed",
				zap.Int("attempt", attempt),
				zap.Stringer("status", result.Status),
				zap.Error(result.Err),
			)
			continue
		}

		questions, err := decodeQuestions(result.Text)
		if err != nil {
			s.log.Warn("questions.parse_failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
				zap.String("content", logger.Truncate(result.Text, maxLoggedResponseLen)),
			)
			continue
		}

		s.log.Info("questions.generated", zap.String("role", role), zap.Int("attempt", attempt))
		return QuestionSet{Questions: questions, Source: QuestionsGenerated, Attempts: attempt}
	}

	s.log.Info("questions.fallback", zap.String("role", role), zap.Int("attempts", attempt))
	return QuestionSet{Questions: staticQuestionsJSON(), Source: QuestionsFallback, Attempts: attempt}
}

// EvaluateAnswer implements InterviewService.
func (s *interviewService) EvaluateAnswer(ctx context.Context, req models.EvaluateAnswerRequest) models.AnswerEvaluation {
	if strings.TrimSpace(req.Answer()) == "" {
		return models.AnswerEvaluation{Score: 0, Feedback: NoAnswerFeedback}
	}

	prompt := s.promptBuilder.BuildAnswerEvaluationPrompt(req.QuestionText, req.Answer(), req.Difficulty)

	result := s.generator.Generate(ctx, prompt, evaluationMaxTokens)
	if !result.OK() {
		s.log.Info("evaluation.heuristic",
			zap.String("question_id", req.QuestionID),
			zap.Stringer("status", result.Status),
			zap.Error(result.Err),
		)
		return HeuristicEvaluation(req.Answer())
	}

	evaluation, err := parseAnswerEvaluation(result.Text)
	if err != nil {
		s.log.Warn("evaluation.parse_failed",
			zap.String("question_id", req.QuestionID),
			zap.Error(err),
			zap.String("content", logger.Truncate(result.Text, maxLoggedResponseLen)),
		)
		return models.AnswerEvaluation{Score: parseFailedScore, Feedback: ParseFailedFeedback}
	}

	return evaluation
}

// HeuristicEvaluation scores an answer one point per ten words, clamped to [1, 10].
func HeuristicEvaluation(answerText string) models.AnswerEvaluation {
	score := len(strings.Fields(answerText)) / heuristicWordsPerPoint
	score = max(minHeuristicScore, min(maxHeuristicScore, score))

	return models.AnswerEvaluation{Score: score, Feedback: HeuristicFeedback}
}

func decodeQuestions(text string) ([]json.RawMessage, error) {
	items, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	if len(items) != questionSetSize {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrStructuredOutputInvalid, questionSetSize, len(items))
	}

	return items, nil
}

// parseAnswerEvaluation reads the model reply as a bare JSON object; no fence
// stripping happens on this path.
func parseAnswerEvaluation(text string) (models.AnswerEvaluation, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return models.AnswerEvaluation{}, fmt.Errorf("%w: %v", ErrStructuredOutputInvalid, err)
	}

	if err := answerEvaluationSchema.Validate(doc); err != nil {
		return models.AnswerEvaluation{}, fmt.Errorf("%w: %v", ErrStructuredOutputInvalid, err)
	}

	var raw struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return models.AnswerEvaluation{}, fmt.Errorf("%w: %v", ErrStructuredOutputInvalid, err)
	}

	return models.AnswerEvaluation{Score: int(raw.Score), Feedback: strings.TrimSpace(raw.Feedback)}, nil
}
