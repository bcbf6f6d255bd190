package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration",
	Long: `View and change docchat configuration.

Configuration lives in a TOML file (~/.docchat/config.toml by default).
API keys are never stored there; set OPENAI_API_KEY or ANTHROPIC_API_KEY
in the environment or a .env file instead.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it.

Keys use dot notation, e.g.:
  docs_dir             folder scanned for PDFs
  chunking.chunk_size  chunk length in characters
  chunking.overlap     overlap between adjacent chunks
  retrieval.batch_size chunks embedded per provider call
  retrieval.top_k      passages retrieved per question
  embedding.provider   ollama or openai
  llm.provider         ollama, openai or anthropic`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Folder: %s\n", corpusFolder())
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Chunk size: %d\n", appSettings.Chunking.ChunkSize)
	cmd.Printf("  Overlap: %d\n", appSettings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Batch size: %d\n", appSettings.Retrieval.BatchSize)
	cmd.Printf("  Top K: %d\n", appSettings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  Greeting: %s\n", appSettings.Chat.Greeting)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", appSettings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", appSettings.Embedding.Model)
	printProviderStatus(cmd, appSettings.Embedding.IsConfigured())

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", appSettings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", appSettings.LLM.Model)
	printProviderStatus(cmd, appSettings.LLM.IsConfigured())

	if configStore != nil {
		cmd.Printf("Config file: %s\n", configStore.Path())
	}

	return nil
}

func printProviderStatus(cmd *cobra.Command, configured bool) {
	status := "configured"
	if !configured {
		status = "not configured (missing API key?)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store integers as integers so TOML round-trips them correctly.
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	cmd.Println("Takes effect on next run.")
	return nil
}
