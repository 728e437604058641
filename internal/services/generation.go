package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/interview-assessor/internal/logger"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-oss-20b:free"
	DefaultGeminiModel       = "gemini-2.5-flash"

	defaultGenerationTimeout = 30 * time.Second
	maxLoggedResponseLen     = 200
)

// GenerationConfig is fixed at startup and handed to NewGenerator.
// An empty APIKey yields a generator that reports every call as unavailable.
type GenerationConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

type GenerationStatus int

const (
	GenerationSuccess GenerationStatus = iota
	GenerationUnavailable
	GenerationInvalid
)

func (s GenerationStatus) String() string {
	switch s {
	case GenerationSuccess:
		return "success"
	case GenerationUnavailable:
		return "unavailable"
	case GenerationInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("GenerationStatus(%d)", int(s))
	}
}

// GenerationResult is the outcome of one generation call. Text is only set on success.
type GenerationResult struct {
	Status GenerationStatus
	Text   string
	Err    error
}

func (r GenerationResult) OK() bool {
	return r.Status == GenerationSuccess
}

func generationSucceeded(text string) GenerationResult {
	return GenerationResult{Status: GenerationSuccess, Text: text}
}

func generationUnavailable(err error) GenerationResult {
	return GenerationResult{Status: GenerationUnavailable, Err: fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)}
}

func generationInvalid(err error) GenerationResult {
	return GenerationResult{Status: GenerationInvalid, Err: err}
}

// Generator asks an external text-generation service to complete a prompt.
// Implementations never return hard failures; callers branch on the result status.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) GenerationResult
}

func NewGenerator(ctx context.Context, cfg GenerationConfig, log *zap.Logger) (Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerationTimeout
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("llm.disabled", zap.String("reason", "no api key configured"))
		return unavailableGenerator{}, nil
	}

	switch cfg.Provider {
	case "", ProviderOpenRouter:
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOpenRouterBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOpenRouterModel
		}

		transportCfg := openai.DefaultConfig(cfg.APIKey)
		transportCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		transportCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

		return &openAIGenerator{
			client:  openai.NewClientWithConfig(transportCfg),
			model:   cfg.Model,
			timeout: cfg.Timeout,
			log:     log.With(zap.String("provider", ProviderOpenRouter)),
		}, nil

	case ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		return &geminiGenerator{
			models:  client.Models,
			model:   cfg.Model,
			timeout: cfg.Timeout,
			log:     log.With(zap.String("provider", ProviderGemini)),
		}, nil

	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string, int) GenerationResult {
	return generationUnavailable(fmt.Errorf("no api key configured"))
}

// chatCompleter is the slice of *openai.Client used here.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openAIGenerator struct {
	client  chatCompleter
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// Generate implements Generator.
func (g *openAIGenerator) Generate(ctx context.Context, prompt string, maxOutputTokens int) GenerationResult {
	start := time.Now()
	log, _ := logger.ForRequest(g.log.With(zap.String("model", g.model)), "llm.generate")

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Debug("llm.generate.start", zap.Int("prompt_len", len(prompt)), zap.Int("max_tokens", maxOutputTokens))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxOutputTokens,
	})
	if err != nil {
		log.Warn("llm.generate.http_error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return generationUnavailable(err)
	}

	if len(resp.Choices) == 0 {
		log.Warn("llm.generate.no_choices", zap.Duration("elapsed", time.Since(start)))
		return generationInvalid(fmt.Errorf("no choices in response"))
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		log.Warn("llm.generate.empty_content", zap.Duration("elapsed", time.Since(start)))
		return generationInvalid(fmt.Errorf("empty completion content"))
	}

	log.Debug("llm.generate.ok",
		zap.Int("content_len", len(content)),
		zap.String("content", logger.Truncate(content, maxLoggedResponseLen)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return generationSucceeded(content)
}

// contentGenerator is the slice of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiGenerator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// Generate implements Generator.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string, maxOutputTokens int) GenerationResult {
	start := time.Now()
	log, _ := logger.ForRequest(g.log.With(zap.String("model", g.model)), "llm.generate")

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxOutputTokens),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		log.Warn("llm.generate.api_error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return generationUnavailable(err)
	}

	if resp == nil {
		log.Warn("llm.generate.nil_response", zap.Duration("elapsed", time.Since(start)))
		return generationInvalid(fmt.Errorf("no response generated (nil response)"))
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		log.Warn("llm.generate.empty_content", zap.Duration("elapsed", time.Since(start)))
		return generationInvalid(fmt.Errorf("no text content in response"))
	}

	log.Debug("llm.generate.ok",
		zap.Int("content_len", len(text)),
		zap.String("content", logger.Truncate(text, maxLoggedResponseLen)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return generationSucceeded(text)
}
