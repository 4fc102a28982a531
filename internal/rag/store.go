package rag

import (
	"math"
	"sort"
)

// Chunk is an embedded piece of one document.
type Chunk struct {
	Content   string
	Embedding []float32
}

// SearchResult pairs a chunk with its similarity to the query.
type SearchResult struct {
	Content string
	Score   float64
}

// VectorStore is a brute-force cosine-similarity index over one
// document's chunks. A report yields a few dozen chunks at most, so a
// linear scan beats any real index here.
type VectorStore struct {
	chunks []Chunk
}

func NewVectorStore(chunks []Chunk) *VectorStore {
	return &VectorStore{chunks: chunks}
}

// Len returns the number of indexed chunks.
func (s *VectorStore) Len() int {
	return len(s.chunks)
}

// Search returns the top-k chunks by cosine similarity, best first.
func (s *VectorStore) Search(query []float32, k int) []SearchResult {
	if k <= 0 || len(s.chunks) == 0 {
		return nil
	}

	results := make([]SearchResult, 0, len(s.chunks))
	for _, c := range s.chunks {
		results = append(results, SearchResult{
			Content: c.Content,
			Score:   CosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either has no magnitude or the dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
