package di

import (
	"context"
	"fmt"
	"io"

	"isa-agent/internal/adapter/tool"
	"isa-agent/internal/application/port/input"
	"isa-agent/internal/application/port/output"
	"isa-agent/internal/application/service"
	"isa-agent/internal/infrastructure/embedding"
	"isa-agent/internal/infrastructure/judge/vertex"
	"isa-agent/internal/infrastructure/knowledgegraph"
	"isa-agent/internal/infrastructure/logger"
	"isa-agent/internal/infrastructure/vectorstore"
	"isa-agent/internal/usecase/agent"
	"isa-agent/internal/usecase/evaluator"
	"isa-agent/internal/usecase/router"
)

type AgentContainer struct {
	Logger output.LoggerPort
	Router *router.Router
	Tools  output.ToolRegistry
	Agent  input.QueryAsker
	Ingest vectorstore.IngestReport
}

func NewAgentContainer(ctx context.Context, cfg Config) (*AgentContainer, error) {
	log, err := logger.NewLoggerAdapter("agent", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := buildAgent(ctx, cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return c, nil
}

func buildAgent(ctx context.Context, cfg Config, log output.LoggerPort) (*AgentContainer, error) {
	r, err := newRouter(cfg.RouterRulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load routing rules: %w", err)
	}

	graph, err := newGraph(cfg.KnowledgeGraphFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge graph: %w", err)
	}

	embedder, err := newEmbedder(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	index := vectorstore.NewIndex()
	var report vectorstore.IngestReport
	if cfg.DocumentChunksFile != "" {
		if embedder == nil {
			return nil, fmt.Errorf("DOCUMENT_CHUNKS_FILE is set but no embedding API key is configured for provider %q", cfg.EmbeddingProvider)
		}
		chunks, err := vectorstore.LoadChunks(cfg.DocumentChunksFile)
		if err != nil {
			return nil, err
		}
		splitter := vectorstore.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
		ingestLog := log.WithField("embedder", embedder.Name())
		report, err = vectorstore.NewIngestor(embedder, splitter, index, ingestLog).Ingest(ctx, chunks)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest documents: %w", err)
		}
	}

	tools := service.NewToolRegistry()
	tools.Register(tool.NewVectorSearchTool(embedder, index, cfg.VectorTopK, log))
	tools.Register(tool.NewKnowledgeGraphTool(graph, log))
	tools.Register(tool.NewValidationTool(log))

	return &AgentContainer{
		Logger: log,
		Router: r,
		Tools:  tools,
		Agent:  agent.New(r, tools, log),
		Ingest: report,
	}, nil
}

func (c *AgentContainer) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

type EvaluatorContainer struct {
	Logger    output.LoggerPort
	Evaluator input.DetailedEvaluator
	Runner    *evaluator.BatchRunner
}

func NewEvaluatorContainer(cfg Config, backend output.JudgeBackend, out io.Writer) (*EvaluatorContainer, error) {
	log, err := logger.NewLoggerAdapter("evaluate", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if backend == nil {
		backend = vertex.NewBackend(vertex.Config{ProbeModels: cfg.ProbeModels, Logger: log})
	}

	ev, err := evaluator.New(backend, log, evaluator.Config{
		Candidates:     cfg.Candidates,
		AttemptTimeout: cfg.AttemptTimeout,
	})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}

	return &EvaluatorContainer{
		Logger:    log,
		Evaluator: ev,
		Runner:    evaluator.NewBatchRunner(ev, out, log),
	}, nil
}

func (c *EvaluatorContainer) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newRouter(path string) (*router.Router, error) {
	if path == "" {
		return router.NewDefault()
	}
	set, err := router.LoadRulesFile(path)
	if err != nil {
		return nil, err
	}
	return router.New(set.Rules, set.Fallback), nil
}

func newGraph(path string) (*knowledgegraph.Graph, error) {
	if path == "" {
		return knowledgegraph.NewDefault()
	}
	return knowledgegraph.LoadFile(path)
}

// newEmbedder returns nil without error when the selected provider has no
// API key. Vector search then reports an empty index.
func newEmbedder(ctx context.Context, cfg Config, log output.LoggerPort) (output.EmbedderPort, error) {
	switch cfg.EmbeddingProvider {
	case EmbeddingProviderGenAI, "":
		if cfg.GoogleAPIKey == "" {
			log.Warn("GOOGLE_API_KEY not set, vector search disabled")
			return nil, nil
		}
		return embedding.NewGenAIEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
	case EmbeddingProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, vector search disabled")
			return nil, nil
		}
		return embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.EmbeddingModel,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  log,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
