package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantErr     bool
		errContains string
	}{
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-large",
				APIKey:   "sk-test",
			},
		},
		{
			name: "openai without key fails",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-large",
			},
			wantErr:     true,
			errContains: "API key",
		},
		{
			name: "anthropic has no embeddings",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "key",
			},
			wantErr:     true,
			errContains: "does not support embeddings",
		},
		{
			name: "unknown provider fails",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProvider("cohere"),
			},
			wantErr:     true,
			errContains: "unsupported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()

			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantErr  bool
	}{
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o",
				APIKey:   "sk-test",
			},
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
				APIKey:   "key",
			},
		},
		{
			name: "openai without key fails",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr: true,
		},
		{
			name: "unknown provider fails",
			settings: &domain.LLMSettings{
				Provider: domain.AIProvider("mistral"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()

			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateAndValidate_Unconfigured(t *testing.T) {
	_, err := CreateAndValidateEmbeddingService(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = CreateAndValidateLLMService(&domain.LLMSettings{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
