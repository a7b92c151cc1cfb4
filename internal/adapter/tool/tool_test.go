package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isa-agent/internal/domain/entity"
	"isa-agent/internal/infrastructure/knowledgegraph"
	"isa-agent/internal/infrastructure/logger"
	"isa-agent/internal/infrastructure/vectorstore"
)

type fixedEmbedder struct {
	vec []float32
	err error
}

func (e *fixedEmbedder) Name() string { return "fixed" }
func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}
func (e *fixedEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

func seededIndex(t *testing.T) *vectorstore.Index {
	t.Helper()
	index := vectorstore.NewIndex()
	require.NoError(t, index.Add(entity.DocumentChunk{
		ChunkID:      "1",
		Content:      "GS1 GTINs are globally unique identifiers for trade items.",
		SourceName:   "GS1 General Specifications v24.0",
		PageNumber:   45,
		SectionTitle: "2.1 GTIN Allocation Rules",
		Embedding:    []float32{1, 0},
	}))
	require.NoError(t, index.Add(entity.DocumentChunk{
		ChunkID:    "2",
		Content:    "GS1 Digital Link allows brands to web-enable products.",
		SourceName: "GS1 Digital Link v1.3",
		Embedding:  []float32{0, 1},
	}))
	return index
}

func TestVectorSearchTool_Run(t *testing.T) {
	tool := NewVectorSearchTool(&fixedEmbedder{vec: []float32{1, 0}}, seededIndex(t), 1, logger.NewNop())

	out, err := tool.Run(context.Background(), "How are GTINs allocated?")

	require.NoError(t, err)
	assert.Equal(t, "Found 1 relevant document chunks for \"How are GTINs allocated?\":\n\n"+
		"1. [GS1 General Specifications v24.0 | 2.1 GTIN Allocation Rules | p. 45] (score 1.00)\n"+
		"   GS1 GTINs are globally unique identifiers for trade items.", out)
	assert.Equal(t, entity.ToolVectorSearch, tool.Name())
}

func TestVectorSearchTool_DefaultTopK(t *testing.T) {
	tool := NewVectorSearchTool(&fixedEmbedder{vec: []float32{1, 1}}, seededIndex(t), 0, logger.NewNop())
	assert.Equal(t, DefaultTopK, tool.topK)

	out, err := tool.Run(context.Background(), "digital link")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 relevant document chunks")
	assert.Contains(t, out, "2. [GS1 ")
}

func TestVectorSearchTool_EmptyIndex(t *testing.T) {
	embedder := &fixedEmbedder{err: errors.New("must not be called")}
	tool := NewVectorSearchTool(embedder, vectorstore.NewIndex(), 5, logger.NewNop())

	out, err := tool.Run(context.Background(), "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "index is empty")
}

func TestVectorSearchTool_EmbedError(t *testing.T) {
	boom := errors.New("quota exceeded")
	tool := NewVectorSearchTool(&fixedEmbedder{err: boom}, seededIndex(t), 5, logger.NewNop())

	_, err := tool.Run(context.Background(), "gtin")
	assert.ErrorIs(t, err, boom)
}

func TestKnowledgeGraphTool_Run(t *testing.T) {
	graph, err := knowledgegraph.NewDefault()
	require.NoError(t, err)
	tool := NewKnowledgeGraphTool(graph, logger.NewNop())

	out, err := tool.Run(context.Background(), "What does AI 01 mean?")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 matching entities and 1 related entities for query \"What does AI 01 mean?\".")
	assert.Contains(t, out, "- Application Identifier (01) [ApplicationIdentifier]")
	assert.Contains(t, out, "  format: N2+N14")
	assert.Contains(t, out, "Related entities:\n- Global Trade Item Number (GTIN) [Identifier]")
	assert.Contains(t, out, "- Application Identifier (01) -carries-> Global Trade Item Number (GTIN)")
}

func TestKnowledgeGraphTool_NoMatch(t *testing.T) {
	graph, err := knowledgegraph.NewDefault()
	require.NoError(t, err)

	out, err := NewKnowledgeGraphTool(graph, logger.NewNop()).Run(context.Background(), "leg uit wat een pallet is")

	require.NoError(t, err)
	assert.Equal(t, "No direct matches or related information found for \"leg uit wat een pallet is\" in the Knowledge Graph.", out)
}

func TestValidationTool_ValidGTIN(t *testing.T) {
	out, err := NewValidationTool(logger.NewNop()).Run(context.Background(), "Valideer GTIN 4006381333931")

	require.NoError(t, err)
	assert.Equal(t, "GTIN 4006381333931: Valid GTIN-13\n"+
		"- Numeric: Passed (digits only)\n"+
		"- Length [8 12 13 14]: Passed (actual length 13)\n"+
		"- Check digit: Passed (check digit matches calculated value)", out)
}

func TestValidationTool_InvalidCheckDigit(t *testing.T) {
	out, err := NewValidationTool(logger.NewNop()).Run(context.Background(), "check 4006381333932")

	require.NoError(t, err)
	assert.Contains(t, out, "GTIN 4006381333932: Invalid (Check digit)")
	assert.Contains(t, out, "expected 1, got 2")
}

func TestValidationTool_MultipleValuesAndKeyword(t *testing.T) {
	out, err := NewValidationTool(logger.NewNop()).Run(context.Background(), "validate gln 4006381333931 and 12345")

	require.NoError(t, err)
	assert.Contains(t, out, "GLN 4006381333931: Valid GLN")
	assert.Contains(t, out, "GLN 12345: Invalid (Length [13])")
}

func TestValidationTool_NoIdentifier(t *testing.T) {
	out, err := NewValidationTool(logger.NewNop()).Run(context.Background(), "validate AI 01 please")

	require.NoError(t, err)
	assert.Equal(t, noIdentifierMessage, out)
}

func TestInferIdentifierType(t *testing.T) {
	assert.Equal(t, entity.IdentifierSSCC, InferIdentifierType("controleer SSCC 376123450000010010"))
	assert.Equal(t, entity.IdentifierGLN, InferIdentifierType("validate GLN"))
	assert.Equal(t, entity.IdentifierGTIN, InferIdentifierType("check 12345678"))
}
