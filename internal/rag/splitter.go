package rag

import "strings"

// Splitter cuts document text into overlapping chunks. Boundaries snap
// backwards to the strongest nearby break (paragraph, line, sentence,
// word) so chunks do not cut through sentences mid-word.
type Splitter struct {
	chunkSize int
	overlap   int
}

// boundary markers in preference order
var boundaryMarkers = []string{"\n\n", "\n", ". ", " "}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split returns the chunk texts for a document. Empty input yields no
// chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		end = s.snapBoundary(runes, start, end)
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - s.overlap
		if next <= start {
			// Guarantee forward progress on pathological input.
			next = end
		}
		start = next
	}
	return chunks
}

// snapBoundary moves the cut point backwards from end to the closest
// strong break, searching no further back than half a chunk.
func (s *Splitter) snapBoundary(runes []rune, start, end int) int {
	window := string(runes[start:end])
	limit := len(window) / 2

	for _, marker := range boundaryMarkers {
		idx := strings.LastIndex(window, marker)
		if idx <= limit {
			continue
		}
		cut := idx + len(marker)
		// LastIndex works on bytes; convert back to a rune offset.
		return start + len([]rune(window[:cut]))
	}
	return end
}
