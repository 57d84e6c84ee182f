package analysis

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/exam-prep/backend/internal/models"
)

// LLMClient is the interface both analyzer backends satisfy.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt string, userContent []anthropic.ContentBlockParamUnion) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Analyzer transcribes practice work and judges its correctness.
type Analyzer struct {
	llm   LLMClient
	model string
}

func NewAnalyzer() *Analyzer {
	var llm LLMClient
	model := "mock"

	if os.Getenv("MOCK_ANALYZER") == "true" {
		llm = NewMockClient()
		log.Println("Analyzer using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		llm = NewAPIClient(model)
		log.Println("Analyzer using Anthropic API:", model)
	}

	return &Analyzer{llm: llm, model: model}
}

func (a *Analyzer) ModelName() string {
	return a.model
}

// Transcribe extracts the student's written work from an image or PDF.
func (a *Analyzer) Transcribe(ctx context.Context, data []byte, mediaType string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(data)

	var content anthropic.ContentBlockParamUnion
	if mediaType == "application/pdf" {
		content = anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: encoded})
	} else {
		content = anthropic.NewImageBlockBase64(mediaType, encoded)
	}

	resp, err := a.llm.Complete(ctx, TranscribeSystemPrompt(), []anthropic.ContentBlockParamUnion{
		content,
		anthropic.NewTextBlock(TranscribeUserPrompt()),
	})
	if err != nil {
		return "", fmt.Errorf("transcribe work: %w", err)
	}

	return resp.Content, nil
}

// Analyze judges transcribed work for correctness and tags its topics.
// A malformed model response degrades to the fallback analysis rather
// than failing the upload.
func (a *Analyzer) Analyze(ctx context.Context, extractedText string) (*models.WorkAnalysis, error) {
	resp, err := a.llm.Complete(ctx, AnalyzeSystemPrompt(), []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(BuildAnalyzeUserPrompt(extractedText)),
	})
	if err != nil {
		return nil, fmt.Errorf("analyze work: %w", err)
	}

	analysis, err := ParseAnalysis(resp.Content)
	if err != nil {
		log.Printf("Analysis response unparseable, using fallback: %v", err)
		return FallbackAnalysis(), nil
	}

	return analysis, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Complete(ctx context.Context, systemPrompt string, userContent []anthropic.ContentBlockParamUnion) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(userContent...),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, systemPrompt string, userContent []anthropic.ContentBlockParamUnion) (*LLMResponse, error) {
	content := buildMockAnalysisJSON()
	if systemPrompt == TranscribeSystemPrompt() {
		content = "Problem 3: solve for x in 2x + 6 = 14. Work shown: 2x = 8, x = 4."
	}
	return &LLMResponse{
		Content:      content,
		PromptTokens: 800,
		OutputTokens: 200,
	}, nil
}

func buildMockAnalysisJSON() string {
	return `{
  "is_correct": true,
  "feedback": "The algebraic steps are valid and the final answer is correct.",
  "topics": ["Linear Equations", "Algebra"],
  "confidence": 0.95,
  "suggestions": ["Show the division step explicitly"]
}`
}
