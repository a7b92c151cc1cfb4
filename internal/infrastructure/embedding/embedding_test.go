package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"isa-agent/internal/domain/entity"
	"isa-agent/internal/infrastructure/logger"
	"isa-agent/internal/infrastructure/vectorstore"
)

func TestOpenAIEmbedder_Embed(t *testing.T) {
	var gotModel string
	var gotInput []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel, gotInput = body.Model, body.Input

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.25,-0.5,1]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":3,"total_tokens":3}}`))
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Logger:  logger.NewNop(),
	})

	vec, err := e.Embed(context.Background(), "What is a GTIN?")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 1}, vec)
	assert.Equal(t, DefaultOpenAIModel, gotModel)
	assert.Equal(t, []string{"What is a GTIN?"}, gotInput)
	assert.Equal(t, "openai:text-embedding-3-small", e.Name())
}

func TestOpenAIEmbedder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "bad", BaseURL: srv.URL, Model: "custom-embed"})

	_, err := e.Embed(context.Background(), "gln")
	require.Error(t, err)
	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	assert.Equal(t, "openai:custom-embed", e.Name())
}

func TestOpenAIEmbedder_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[],"model":"m"}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIEmbedder(OpenAIConfig{BaseURL: srv.URL}).Embed(context.Background(), "sscc")
	assert.ErrorIs(t, err, ErrNoEmbedding)
}

type stubModels struct {
	resp   *genai.EmbedContentResponse
	err    error
	model  string
	config *genai.EmbedContentConfig
	texts  []string
}

func (s *stubModels) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	s.model = model
	s.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			s.texts = append(s.texts, p.Text)
		}
	}
	return s.resp, s.err
}

func TestGenAIEmbedder_Embed(t *testing.T) {
	stub := &stubModels{resp: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	}}
	e := newGenAIEmbedder(stub, "")

	vec, err := e.Embed(context.Background(), "GS1 Digital Link")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
	assert.Equal(t, DefaultGenAIModel, stub.model)
	assert.Equal(t, "RETRIEVAL_QUERY", stub.config.TaskType)
	assert.Equal(t, []string{"GS1 Digital Link"}, stub.texts)
	assert.Equal(t, "genai:text-embedding-004", e.Name())
}

func TestGenAIEmbedder_IngestionUsesDocumentTaskType(t *testing.T) {
	stub := &stubModels{resp: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{1, 0}}},
	}}
	e := newGenAIEmbedder(stub, "")
	index := vectorstore.NewIndex()

	report, err := vectorstore.NewIngestor(e, nil, index, logger.NewNop()).Ingest(context.Background(), []entity.DocumentChunk{
		{Content: "An SSCC identifies a logistic unit.", SourceName: "GS1 General Specifications v24.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, "RETRIEVAL_DOCUMENT", stub.config.TaskType)

	_, err = e.Embed(context.Background(), "What is an SSCC?")
	require.NoError(t, err)
	assert.Equal(t, "RETRIEVAL_QUERY", stub.config.TaskType)
}

func TestGenAIEmbedder_Errors(t *testing.T) {
	boom := errors.New("quota")
	_, err := newGenAIEmbedder(&stubModels{err: boom}, "m").Embed(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	_, err = newGenAIEmbedder(&stubModels{resp: &genai.EmbedContentResponse{}}, "m").Embed(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoEmbedding)

	_, err = NewGenAIEmbedder(context.Background(), "", "")
	assert.Error(t, err)
}
