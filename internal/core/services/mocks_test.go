package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockExtractor implements driven.PDFExtractor for testing.
// It fabricates pages from the file name instead of parsing PDFs.
type mockExtractor struct {
	mu         sync.Mutex
	pagesPer   int
	extractErr error
	calls      []string
}

func (m *mockExtractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()

	if m.extractErr != nil {
		return nil, m.extractErr
	}

	name := path[strings.LastIndexByte(path, '/')+1:]
	count := m.pagesPer
	if count == 0 {
		count = 2
	}
	pages := make([]domain.Page, count)
	for i := range pages {
		pages[i] = domain.Page{
			DocumentID: name,
			Number:     i + 1,
			Text:       strings.Repeat("contenido de "+name+" ", 10),
		}
	}
	return pages, nil
}

func (m *mockExtractor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockEmbedding implements driven.EmbeddingService for testing.
// Texts mentioning "cycling" embed along one axis, everything else along
// the other, so retrieval tests can steer similarity.
type mockEmbedding struct {
	mu          sync.Mutex
	batchSizes  []int
	failAtBatch int // 1-based; 0 means never fail
	embedErr    error
}

func (m *mockEmbedding) vector(text string) []float32 {
	if strings.Contains(strings.ToLower(text), "cycling") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchSizes = append(m.batchSizes, len(texts))
	batchNo := len(m.batchSizes)
	m.mu.Unlock()

	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.failAtBatch > 0 && batchNo >= m.failAtBatch {
		return nil, context.DeadlineExceeded
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.vector(text)
	}
	return vectors, nil
}

func (m *mockEmbedding) Dimensions() int                 { return 2 }
func (m *mockEmbedding) ModelName() string               { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error    { return nil }
func (m *mockEmbedding) Close() error                    { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response    string
	generateErr error
	lastPrompt  string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// memoryIndexFactory builds the real in-memory index, the same factory
// main wires in.
func memoryIndexFactory(entries []domain.IndexEntry) (driven.VectorIndex, error) {
	return memory.New(entries)
}
