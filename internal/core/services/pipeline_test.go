package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/postprocessors/chunker"
)

func newTestService(extractor *mockExtractor, embedder *mockEmbedding) *PipelineService {
	return NewPipelineService(
		NewDocumentLoader(extractor),
		chunker.New(chunker.WithChunkSize(50), chunker.WithOverlap(10)),
		NewEmbeddingBatcher(embedder, WithBatchSize(8)),
		memoryIndexFactory,
	)
}

func TestPipelineService_Signature_Sentinels(t *testing.T) {
	svc := newTestService(&mockExtractor{}, &mockEmbedding{})

	assert.Equal(t, SignatureMissing, svc.Signature("/does/not/exist"))

	folder := t.TempDir()
	assert.Equal(t, SignatureEmpty, svc.Signature(folder))

	// Non-PDF files do not change the empty sentinel.
	require.NoError(t, os.WriteFile(filepath.Join(folder, "readme.md"), []byte("x"), 0o644))
	assert.Equal(t, SignatureEmpty, svc.Signature(folder))
}

func TestPipelineService_Signature_Stability(t *testing.T) {
	svc := newTestService(&mockExtractor{}, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")
	touchPDF(t, folder, "b.pdf")

	first := svc.Signature(folder)
	second := svc.Signature(folder)
	assert.Equal(t, first, second)
	assert.NotEqual(t, SignatureEmpty, first)
	assert.NotEqual(t, SignatureMissing, first)
}

func TestPipelineService_Signature_ChangesOnTouch(t *testing.T) {
	svc := newTestService(&mockExtractor{}, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	before := svc.Signature(folder)

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(folder, "a.pdf"), later, later))

	assert.NotEqual(t, before, svc.Signature(folder))
}

func TestSaltSignature_ForcesMiss(t *testing.T) {
	svc := newTestService(&mockExtractor{}, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	sig := svc.Signature(folder)
	assert.NotEqual(t, sig, SaltSignature(sig))
	assert.Equal(t, sig+":force", SaltSignature(sig))
}

func TestPipelineService_GetOrBuild_BuildsOnce(t *testing.T) {
	extractor := &mockExtractor{}
	svc := newTestService(extractor, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	sig := svc.Signature(folder)

	first, err := svc.GetOrBuild(context.Background(), sig, folder)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.GetOrBuild(context.Background(), sig, folder)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, extractor.callCount())
}

func TestPipelineService_GetOrBuild_CoalescesConcurrentCalls(t *testing.T) {
	extractor := &mockExtractor{}
	svc := newTestService(extractor, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	sig := svc.Signature(folder)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetOrBuild(context.Background(), sig, folder)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, extractor.callCount())
}

func TestPipelineService_GetOrBuild_ErrorNotCached(t *testing.T) {
	embedder := &mockEmbedding{failAtBatch: 1}
	extractor := &mockExtractor{}
	svc := newTestService(extractor, embedder)
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	sig := svc.Signature(folder)

	_, err := svc.GetOrBuild(context.Background(), sig, folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)

	// The failure was not memoized: a retry re-executes the full build.
	embedder.failAtBatch = 0
	pipeline, err := svc.GetOrBuild(context.Background(), sig, folder)
	require.NoError(t, err)
	assert.Positive(t, pipeline.ChunkCount())
	assert.Equal(t, 2, extractor.callCount())
}

func TestPipelineService_GetOrBuild_EmptyFolder(t *testing.T) {
	extractor := &mockExtractor{}
	svc := newTestService(extractor, &mockEmbedding{})
	folder := t.TempDir()

	sig := svc.Signature(folder)
	require.Equal(t, SignatureEmpty, sig)

	_, err := svc.GetOrBuild(context.Background(), sig, folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)

	// No pipeline was cached for the empty signature.
	_, err = svc.GetOrBuild(context.Background(), sig, folder)
	require.Error(t, err)
	assert.Equal(t, 0, extractor.callCount())
}

func TestPipelineService_GetOrBuild_RebuildOnCorpusGrowth(t *testing.T) {
	extractor := &mockExtractor{}
	svc := newTestService(extractor, &mockEmbedding{})
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")
	touchPDF(t, folder, "b.pdf")
	touchPDF(t, folder, "c.pdf")

	sigBefore := svc.Signature(folder)
	before, err := svc.GetOrBuild(context.Background(), sigBefore, folder)
	require.NoError(t, err)
	assert.Len(t, before.Documents(), 3)

	touchPDF(t, folder, "d.pdf")

	sigAfter := svc.Signature(folder)
	assert.NotEqual(t, sigBefore, sigAfter)

	after, err := svc.GetOrBuild(context.Background(), sigAfter, folder)
	require.NoError(t, err)
	assert.Len(t, after.Documents(), 4)
	assert.Greater(t, after.ChunkCount(), before.ChunkCount())
	assert.Equal(t, after.ChunkCount(), after.Index().Len())
}

func TestPipelineService_Build_InvalidChunking(t *testing.T) {
	svc := NewPipelineService(
		NewDocumentLoader(&mockExtractor{}),
		chunker.New(chunker.WithChunkSize(50), chunker.WithOverlap(50)),
		NewEmbeddingBatcher(&mockEmbedding{}),
		memoryIndexFactory,
	)
	folder := t.TempDir()
	touchPDF(t, folder, "a.pdf")

	_, err := svc.GetOrBuild(context.Background(), svc.Signature(folder), folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidChunking)
}
