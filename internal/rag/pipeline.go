package rag

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// promptTemplate keeps the model grounded in the retrieved chunks.
const promptTemplate = "Answer the question based only on the context:\n\n%s\n\nQuestion: %s"

// Options tune the pipeline.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	CacheTTL     time.Duration
}

// Answer is the pipeline output: the generated answer plus the context
// chunks it was grounded on.
type Answer struct {
	Text    string
	Sources []string
}

type cachedIndex struct {
	store   *VectorStore
	expires time.Time
}

// Pipeline orchestrates load → split → embed → retrieve → generate for a
// report URL. Embedded documents are cached per URL so follow-up
// questions about the same report skip the fetch and embedding steps.
type Pipeline struct {
	loader    DocumentLoader
	splitter  *Splitter
	embedder  Embedder
	generator Generator
	topK      int
	cacheTTL  time.Duration
	logger    *zap.Logger

	mu    sync.Mutex
	cache map[string]cachedIndex
}

func NewPipeline(loader DocumentLoader, embedder Embedder, generator Generator, opts Options, logger *zap.Logger) *Pipeline {
	topK := opts.TopK
	if topK <= 0 {
		topK = 4
	}
	return &Pipeline{
		loader:    loader,
		splitter:  NewSplitter(opts.ChunkSize, opts.ChunkOverlap),
		embedder:  embedder,
		generator: generator,
		topK:      topK,
		cacheTTL:  opts.CacheTTL,
		logger:    logger,
		cache:     make(map[string]cachedIndex),
	}
}

// Ask answers a question about the report at reportURL.
func (p *Pipeline) Ask(ctx context.Context, reportURL, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty")
	}
	if strings.TrimSpace(reportURL) == "" {
		return nil, ErrNoReport
	}

	store, err := p.index(ctx, reportURL)
	if err != nil {
		return nil, err
	}

	queryVec, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}

	results := store.Search(queryVec, p.topK)
	if len(results) == 0 {
		return nil, ErrEmptyDocument
	}

	sources := make([]string, len(results))
	for i, r := range results {
		sources[i] = r.Content
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(sources, "\n\n"), question)
	answer, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p.logger.Info("answered report question",
		zap.String("report_url", reportURL),
		zap.Int("retrieved_chunks", len(results)),
		zap.Float64("top_score", results[0].Score),
	)

	return &Answer{Text: answer, Sources: sources}, nil
}

// index returns the cached vector index for a report URL, building it
// when absent or expired.
func (p *Pipeline) index(ctx context.Context, reportURL string) (*VectorStore, error) {
	p.mu.Lock()
	if cached, ok := p.cache[reportURL]; ok && time.Now().Before(cached.expires) {
		p.mu.Unlock()
		return cached.store, nil
	}
	p.mu.Unlock()

	text, err := p.loader.Load(ctx, reportURL)
	if err != nil {
		return nil, err
	}

	chunkTexts := p.splitter.Split(text)
	if len(chunkTexts) == 0 {
		return nil, ErrEmptyDocument
	}

	vectors, err := p.embedder.EmbedDocuments(ctx, chunkTexts)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(chunkTexts))
	for i := range chunkTexts {
		chunks[i] = Chunk{Content: chunkTexts[i], Embedding: vectors[i]}
	}
	store := NewVectorStore(chunks)

	p.logger.Info("indexed report document",
		zap.String("report_url", reportURL),
		zap.Int("chunks", store.Len()),
	)

	p.mu.Lock()
	p.cache[reportURL] = cachedIndex{store: store, expires: time.Now().Add(p.cacheTTL)}
	p.mu.Unlock()

	return store, nil
}
