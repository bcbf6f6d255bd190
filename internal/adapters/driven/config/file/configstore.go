package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration keys.
const (
	KeyDocsDir           = "docs_dir"
	KeyChunkSize         = "chunking.chunk_size"
	KeyChunkOverlap      = "chunking.overlap"
	KeyBatchSize         = "retrieval.batch_size"
	KeyTopK              = "retrieval.top_k"
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMBaseURL        = "llm.base_url"
	KeyChatGreeting      = "chat.greeting"
)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the docchat config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.docchat/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docchat")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Settings materialises application settings from the stored configuration,
// falling back to defaults for any key that is absent. API keys are never
// read from the config file; the caller injects them from the environment.
func (s *ConfigStore) Settings() domain.AppSettings {
	settings := domain.DefaultAppSettings()

	if v := s.GetString(KeyDocsDir); v != "" {
		settings.DocsDir = v
	}
	if v := s.GetInt(KeyChunkSize); v > 0 {
		settings.Chunking.ChunkSize = v
	}
	if v := s.GetInt(KeyChunkOverlap); v > 0 {
		settings.Chunking.Overlap = v
	}
	if v := s.GetInt(KeyBatchSize); v > 0 {
		settings.Retrieval.BatchSize = v
	}
	if v := s.GetInt(KeyTopK); v > 0 {
		settings.Retrieval.TopK = v
	}

	if v := s.GetString(KeyEmbeddingProvider); v != "" {
		settings.Embedding.Provider = domain.AIProvider(v)
		if m, ok := domain.DefaultEmbeddingModels()[settings.Embedding.Provider]; ok {
			settings.Embedding.Model = m
		}
	}
	if v := s.GetString(KeyEmbeddingModel); v != "" {
		settings.Embedding.Model = v
	}
	settings.Embedding.BaseURL = s.GetString(KeyEmbeddingBaseURL)

	if v := s.GetString(KeyLLMProvider); v != "" {
		settings.LLM.Provider = domain.AIProvider(v)
		if m, ok := domain.DefaultLLMModels()[settings.LLM.Provider]; ok {
			settings.LLM.Model = m
		}
	}
	if v := s.GetString(KeyLLMModel); v != "" {
		settings.LLM.Model = v
	}
	settings.LLM.BaseURL = s.GetString(KeyLLMBaseURL)

	if v := s.GetString(KeyChatGreeting); v != "" {
		settings.Chat.Greeting = v
	}

	return settings
}
