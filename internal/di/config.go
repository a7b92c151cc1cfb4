package di

import (
	"time"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
	"isa-agent/internal/infrastructure/vectorstore"
	"isa-agent/internal/usecase/evaluator"
)

const (
	EmbeddingProviderGenAI  = "genai"
	EmbeddingProviderOpenAI = "openai"

	DefaultDatasetPath = "evaluation/golden_dataset.json"
)

var (
	DefaultProjects  = []string{"flowing-digit-447320-e2", "gs1-isa", "isa-firebase-5cf2f"}
	DefaultLocations = []string{"us-central1", "us-east4", "europe-west4", "europe-west1"}
	DefaultModels    = []string{"gemini-pro", "gemini-flash-2.5"}
)

type Config struct {
	LogLevel    string
	MetricsFile string

	RouterRulesFile    string
	KnowledgeGraphFile string
	DocumentChunksFile string
	VectorTopK         int
	ChunkSize          int
	ChunkOverlap       int

	EmbeddingProvider string
	EmbeddingModel    string
	GoogleAPIKey      string
	OpenAIAPIKey      string
	OpenAIBaseURL     string

	Candidates     entity.CandidateSet
	DatasetPath    string
	AttemptTimeout time.Duration
	ProbeModels    bool
}

func ConfigFromEnv(env output.ConfigPort) Config {
	return Config{
		LogLevel:    env.GetWithDefault("LOG_LEVEL", "info"),
		MetricsFile: env.Get("METRICS_TEXTFILE"),

		RouterRulesFile:    env.Get("ROUTER_RULES_FILE"),
		KnowledgeGraphFile: env.Get("KNOWLEDGE_GRAPH_FILE"),
		DocumentChunksFile: env.Get("DOCUMENT_CHUNKS_FILE"),
		VectorTopK:         env.GetInt("VECTOR_TOP_K", 5),
		ChunkSize:          env.GetInt("CHUNK_SIZE", vectorstore.DefaultChunkSize),
		ChunkOverlap:       env.GetInt("CHUNK_OVERLAP", vectorstore.DefaultChunkOverlap),

		EmbeddingProvider: env.GetWithDefault("EMBEDDING_PROVIDER", EmbeddingProviderGenAI),
		EmbeddingModel:    env.Get("EMBEDDING_MODEL"),
		GoogleAPIKey:      env.Get("GOOGLE_API_KEY"),
		OpenAIAPIKey:      env.Get("OPENAI_API_KEY"),
		OpenAIBaseURL:     env.Get("OPENAI_BASE_URL"),

		Candidates: entity.CandidateSet{
			Projects:  env.GetList("EVAL_PROJECTS", DefaultProjects),
			Locations: env.GetList("EVAL_LOCATIONS", DefaultLocations),
			Models:    env.GetList("EVAL_MODELS", DefaultModels),
		},
		DatasetPath:    env.GetWithDefault("EVAL_DATASET_PATH", DefaultDatasetPath),
		AttemptTimeout: env.GetDuration("EVAL_ATTEMPT_TIMEOUT", evaluator.DefaultAttemptTimeout),
		ProbeModels:    env.GetBool("EVAL_PROBE_MODELS", false),
	}
}
