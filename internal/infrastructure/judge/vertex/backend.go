// Package vertex runs judge prompts against Gemini models on Vertex AI.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var (
	_ output.JudgeBackend = (*Backend)(nil)
	_ output.JudgeSession = (*session)(nil)
	_ output.JudgeModel   = (*model)(nil)
)

var ErrEmptyResponse = errors.New("model returned an empty response")

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

type clientFactory func(ctx context.Context, project, location string) (modelsAPI, error)

type Config struct {
	// ProbeModels verifies each model with a metadata lookup before the first
	// prompt is sent.
	ProbeModels bool
	Logger      output.LoggerPort
}

// Backend opens one Vertex AI client per (project, location) pair using
// application default credentials.
type Backend struct {
	newClient clientFactory
	probe     bool
	logger    output.LoggerPort
}

func NewBackend(cfg Config) *Backend {
	return newBackend(cfg, func(ctx context.Context, project, location string) (modelsAPI, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  project,
			Location: location,
		})
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	})
}

func newBackend(cfg Config, factory clientFactory) *Backend {
	return &Backend{
		newClient: factory,
		probe:     cfg.ProbeModels,
		logger:    cfg.Logger,
	}
}

func (b *Backend) Open(ctx context.Context, project, location string) (output.JudgeSession, error) {
	if project == "" || location == "" {
		return nil, entity.Permanent("open session", fmt.Errorf("project and location are required"))
	}
	models, err := b.newClient(ctx, project, location)
	if err != nil {
		return nil, Classify("open session", err)
	}
	if b.logger != nil {
		b.logger.Debug("Vertex AI session opened", "project", project, "location", location)
	}
	return &session{models: models, probe: b.probe}, nil
}

type session struct {
	models modelsAPI
	probe  bool
}

func (s *session) Model(ctx context.Context, name string) (output.JudgeModel, error) {
	if name == "" {
		return nil, entity.Permanent("get model", fmt.Errorf("model name is required"))
	}
	if s.probe {
		if _, err := s.models.Get(ctx, name, nil); err != nil {
			return nil, Classify("get model", err)
		}
	}
	return &model{models: s.models, name: name}, nil
}

type model struct {
	models modelsAPI
	name   string
}

func (m *model) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.models.GenerateContent(ctx, m.name, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", Classify("generate", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", entity.Transient("generate", ErrEmptyResponse)
	}
	return text, nil
}

// Classify tags err as a permanent or transient backend failure. Request,
// auth and not-found errors are permanent; timeouts, throttling and server
// errors are transient. Anything else is transient.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var be *entity.BackendError
	if errors.As(err, &be) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return entity.Transient(op, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(op, apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(op, apiErrPtr.Code, err)
	}

	return entity.Transient(op, err)
}

func classifyStatus(op string, code int, err error) error {
	switch {
	case code == http.StatusBadRequest,
		code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusNotFound:
		return entity.Permanent(op, err)
	default:
		return entity.Transient(op, err)
	}
}
