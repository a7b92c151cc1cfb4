package embedding

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"isa-agent/internal/application/port/output"
)

const DefaultGenAIModel = "text-embedding-004"

const (
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

var _ output.EmbedderPort = (*GenAIEmbedder)(nil)

var ErrNoEmbedding = errors.New("no embedding returned")

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GenAIEmbedder generates embeddings with the Gemini API.
type GenAIEmbedder struct {
	models contentEmbedder
	model  string
}

func NewGenAIEmbedder(ctx context.Context, apiKey, model string) (*GenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGenAIEmbedder(client.Models, model), nil
}

func newGenAIEmbedder(models contentEmbedder, model string) *GenAIEmbedder {
	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAIEmbedder{
		models: models,
		model:  model,
	}
}

func (e *GenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, taskRetrievalQuery)
}

func (e *GenAIEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, taskRetrievalDocument)
}

func (e *GenAIEmbedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI embed failed: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, ErrNoEmbedding
	}
	return result.Embeddings[0].Values, nil
}

func (e *GenAIEmbedder) Name() string {
	return fmt.Sprintf("genai:%s", e.model)
}
