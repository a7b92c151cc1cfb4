package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var _ output.VectorIndexPort = (*Index)(nil)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Index is an in-memory cosine similarity index over embedded chunks.
type Index struct {
	mu     sync.RWMutex
	chunks []entity.DocumentChunk
	dim    int
}

func NewIndex() *Index {
	return &Index{}
}

func (i *Index) Add(chunk entity.DocumentChunk) error {
	if len(chunk.Embedding) == 0 {
		return fmt.Errorf("chunk %s: empty embedding", chunk.ChunkID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dim == 0 {
		i.dim = len(chunk.Embedding)
	} else if len(chunk.Embedding) != i.dim {
		return fmt.Errorf("%w: chunk %s has %d, index has %d", ErrDimensionMismatch, chunk.ChunkID, len(chunk.Embedding), i.dim)
	}
	i.chunks = append(i.chunks, chunk)
	return nil
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.chunks)
}

// Search returns up to topK hits ordered by descending cosine similarity.
// Ties keep insertion order.
func (i *Index) Search(ctx context.Context, embedding []float32, topK int) ([]entity.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if topK <= 0 || len(i.chunks) == 0 {
		return nil, nil
	}
	if len(embedding) != i.dim {
		return nil, fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(embedding), i.dim)
	}

	hits := make([]entity.SearchHit, 0, len(i.chunks))
	for _, c := range i.chunks {
		hits = append(hits, entity.SearchHit{Chunk: c, Score: cosine(embedding, c.Embedding)})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for k := range a {
		x, y := float64(a[k]), float64(b[k])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
