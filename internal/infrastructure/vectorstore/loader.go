package vectorstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"isa-agent/internal/domain/entity"
)

// ParseChunks decodes a JSON array of document chunks. Chunks without
// content are rejected.
func ParseChunks(data []byte) ([]entity.DocumentChunk, error) {
	var chunks []entity.DocumentChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse document chunks: %w", err)
	}
	for i, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			return nil, fmt.Errorf("document chunk %d has no content", i)
		}
		if c.SourceName == "" {
			return nil, fmt.Errorf("document chunk %d has no sourceName", i)
		}
	}
	return chunks, nil
}

func LoadChunks(path string) ([]entity.DocumentChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document chunks %s: %w", path, err)
	}
	return ParseChunks(data)
}
