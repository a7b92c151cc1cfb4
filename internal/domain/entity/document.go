package entity

type DocumentChunk struct {
	ChunkID      string    `json:"chunkId,omitempty"`
	Content      string    `json:"content"`
	SourceName   string    `json:"sourceName"`
	PageNumber   int       `json:"pageNumber,omitempty"`
	SectionTitle string    `json:"sectionTitle,omitempty"`
	Embedding    []float32 `json:"-"`
}

type SearchHit struct {
	Chunk DocumentChunk
	Score float64
}
