package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Show(t *testing.T) {
	wireMocks(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Chunking]")
	assert.Contains(t, out, "Chunk size: 1000")
	assert.Contains(t, out, "Overlap: 200")
	assert.Contains(t, out, "Top K: 8")
	assert.Contains(t, out, "OpenAI (cloud)")
}

func TestConfigCmd_SetStoresInt(t *testing.T) {
	_, _, _, config := wireMocks(t)

	out, err := execute(t, "config", "set", "retrieval.top_k", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "Set retrieval.top_k = 4")

	val, ok := config.Get("retrieval.top_k")
	require.True(t, ok)
	assert.Equal(t, 4, val)
}

func TestConfigCmd_SetStoresString(t *testing.T) {
	_, _, _, config := wireMocks(t)

	_, err := execute(t, "config", "set", "llm.provider", "ollama")

	require.NoError(t, err)
	val, ok := config.Get("llm.provider")
	require.True(t, ok)
	assert.Equal(t, "ollama", val)
}

func TestConfigCmd_Path(t *testing.T) {
	wireMocks(t)

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/config.toml")
}
