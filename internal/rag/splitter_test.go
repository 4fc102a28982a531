package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(1000, 200)

	chunks := s.Split("A short report.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short report.", chunks[0])
}

func TestSplitter_EmptyText(t *testing.T) {
	s := NewSplitter(1000, 200)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\n  "))
}

func TestSplitter_ChunkSizeRespected(t *testing.T) {
	s := NewSplitter(100, 20)

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog. ")
	}

	chunks := s.Split(b.String())
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
		assert.NotEmpty(t, c)
	}
}

func TestSplitter_SnapsToSentenceBoundary(t *testing.T) {
	s := NewSplitter(60, 10)

	text := "First sentence here. Second sentence follows on. Third sentence closes it out completely and then some."
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// The first cut lands after a sentence break, not mid-word.
	assert.True(t, strings.HasSuffix(chunks[0], "."),
		"first chunk should end on a sentence boundary, got %q", chunks[0])
}

func TestSplitter_OverlapCarriesContext(t *testing.T) {
	s := NewSplitter(50, 20)

	text := strings.Repeat("alpha beta gamma delta epsilon zeta eta theta. ", 10)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 2)

	// Consecutive chunks share text because the window slides back by the
	// overlap before the next cut.
	tail := chunks[0][len(chunks[0])-10:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestSplitter_ForwardProgressOnPathologicalInput(t *testing.T) {
	// No boundary markers at all: one uninterrupted run of letters.
	s := NewSplitter(50, 45)

	text := strings.Repeat("x", 500)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	assert.GreaterOrEqual(t, total, 500)
}

func TestNewSplitter_Defaults(t *testing.T) {
	s := NewSplitter(0, -5)
	assert.Equal(t, 1000, s.chunkSize)
	assert.Equal(t, 200, s.overlap)

	s = NewSplitter(100, 100)
	assert.Equal(t, 20, s.overlap)
}
