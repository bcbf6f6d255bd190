package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// mockPipeline implements driving.Pipeline.
type mockPipeline struct {
	index      driven.VectorIndex
	chunkCount int
	documents  []string
}

func (m *mockPipeline) Index() driven.VectorIndex { return m.index }
func (m *mockPipeline) ChunkCount() int           { return m.chunkCount }
func (m *mockPipeline) Documents() []string       { return m.documents }

// mockPipelineService implements driving.PipelineService.
type mockPipelineService struct {
	signature     string
	pipeline      *mockPipeline
	buildErr      error
	lastSignature string
}

func (m *mockPipelineService) Signature(_ string) string { return m.signature }

func (m *mockPipelineService) GetOrBuild(_ context.Context, signature, _ string) (driving.Pipeline, error) {
	m.lastSignature = signature
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	return m.pipeline, nil
}

// mockAnswerService implements driving.AnswerService.
type mockAnswerService struct {
	answer       *domain.Answer
	err          error
	lastQuestion string
}

func (m *mockAnswerService) Answer(_ context.Context, question string, _ driven.VectorIndex) (*domain.Answer, error) {
	m.lastQuestion = question
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

// mockHistoryStore implements driven.HistoryStore in memory.
type mockHistoryStore struct {
	sessions map[string][]driven.Message
	order    []string
	failAll  bool
}

func newMockHistoryStore() *mockHistoryStore {
	return &mockHistoryStore{sessions: make(map[string][]driven.Message)}
}

func (m *mockHistoryStore) Append(_ context.Context, sessionID string, msg driven.Message) error {
	if m.failAll {
		return errors.New("storage failure")
	}
	if _, ok := m.sessions[sessionID]; !ok {
		m.order = append(m.order, sessionID)
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	return nil
}

func (m *mockHistoryStore) Messages(_ context.Context, sessionID string) ([]driven.Message, error) {
	if m.failAll {
		return nil, errors.New("storage failure")
	}
	return m.sessions[sessionID], nil
}

func (m *mockHistoryStore) Sessions(_ context.Context) ([]string, error) {
	if m.failAll {
		return nil, errors.New("storage failure")
	}
	// Most recent first.
	out := make([]string, len(m.order))
	for i, id := range m.order {
		out[len(m.order)-1-i] = id
	}
	return out, nil
}

func (m *mockHistoryStore) Close() error { return nil }

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	data map[string]any
	path string
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any), path: "/tmp/config.toml"}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.data[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if n, ok := m.data[key].(int); ok {
		return n
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if b, ok := m.data[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return m.path
}
