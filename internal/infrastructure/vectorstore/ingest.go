package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

type Splitter interface {
	SplitText(text string) ([]string, error)
}

// NewSplitter returns a recursive character splitter. Non-positive values
// fall back to the defaults.
func NewSplitter(size, overlap int) Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = min(DefaultChunkOverlap, size/10)
	}
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
	)
}

type IngestReport struct {
	Successful int
	Failed     int
}

// Ingestor splits, embeds and indexes document chunks.
type Ingestor struct {
	embedder output.EmbedderPort
	splitter Splitter
	index    *Index
	logger   output.LoggerPort
}

func NewIngestor(embedder output.EmbedderPort, splitter Splitter, index *Index, logger output.LoggerPort) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		splitter: splitter,
		index:    index,
		logger:   logger,
	}
}

// Ingest never fails on a single chunk: embedding errors are counted in the
// report and the chunk is skipped. Only context cancellation aborts the run.
func (in *Ingestor) Ingest(ctx context.Context, chunks []entity.DocumentChunk) (IngestReport, error) {
	var report IngestReport

	for _, chunk := range chunks {
		pieces, err := in.split(PlainText(chunk.Content))
		if err != nil {
			in.logger.Warn("Chunk split failed, indexing unsplit", "source", chunk.SourceName, "error", err)
			pieces = []string{PlainText(chunk.Content)}
		}

		for _, piece := range pieces {
			if err := ctx.Err(); err != nil {
				return report, fmt.Errorf("ingestion interrupted: %w", err)
			}

			part := chunk
			part.Content = piece
			part.ChunkID = uuid.NewString()

			embedding, err := in.embedder.EmbedDocument(ctx, piece)
			if err == nil {
				part.Embedding = embedding
				err = in.index.Add(part)
			}
			if err != nil {
				report.Failed++
				in.logger.Warn("Chunk embedding failed",
					"chunk_id", part.ChunkID,
					"source", part.SourceName,
					"embedder", in.embedder.Name(),
					"error", err,
				)
				continue
			}
			report.Successful++
			in.logger.Debug("Chunk indexed", "chunk_id", part.ChunkID, "source", part.SourceName, "page", part.PageNumber)
		}
	}

	if report.Failed > 0 {
		in.logger.Warn("Some chunks failed to embed", "failed", report.Failed, "successful", report.Successful)
	}
	in.logger.Info("Document ingestion finished", "successful", report.Successful, "failed", report.Failed, "indexed", in.index.Len())
	return report, nil
}

func (in *Ingestor) split(content string) ([]string, error) {
	if in.splitter == nil {
		return []string{content}, nil
	}
	pieces, err := in.splitter.SplitText(content)
	if err != nil {
		return nil, err
	}
	if len(pieces) == 0 {
		return []string{content}, nil
	}
	return pieces, nil
}
