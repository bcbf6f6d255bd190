package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the documents interactively",
	Long: `Launch an interactive chat session against the document folder.

The index is built on the first question and reused for the rest of the
session. If PDFs are added, removed or modified while chatting, the next
question rebuilds the index against the new folder state.

Controls:
  Enter     - Ask the question
  Esc, Ctrl+C - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if pipelineService == nil || answerService == nil {
		return errors.New("services not configured")
	}

	folder := corpusFolder()
	sessionID := uuid.NewString()

	// Watch the folder so the UI can surface staleness between questions.
	// The signature check on each question is what actually triggers the
	// rebuild; the watcher is purely informational.
	stale := make(chan struct{}, 1)
	w, err := watcher.New(folder, func() {
		select {
		case stale <- struct{}{}:
		default:
		}
	})
	if err != nil {
		logger.Warn("cannot watch %s: %v", folder, err)
	} else {
		defer w.Close()
	}

	forceNext := rebuild
	ask := func(ctx context.Context, question string) (*domain.Answer, error) {
		signature := pipelineService.Signature(folder)
		if forceNext {
			signature = services.SaltSignature(signature)
			forceNext = false
		}

		pipeline, err := pipelineService.GetOrBuild(ctx, signature, folder)
		if err != nil {
			return nil, fmt.Errorf("building index: %w", err)
		}

		answer, err := answerService.Answer(ctx, question, pipeline.Index())
		if err != nil {
			return nil, err
		}

		recordExchange(ctx, sessionID, question, answer.Text)
		return answer, nil
	}

	model := tui.New(tui.Config{
		Ask:           ask,
		CorpusChanged: stale,
		Title:         folder,
		Greeting:      appSettings.Chat.Greeting,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}

// recordExchange persists a completed question/answer pair. History is
// best-effort; a storage failure never fails the answer.
func recordExchange(ctx context.Context, sessionID, question, answer string) {
	if historyStore == nil {
		return
	}

	now := time.Now().UTC()
	if err := historyStore.Append(ctx, sessionID, driven.Message{Role: "user", Content: question, CreatedAt: now}); err != nil {
		logger.Warn("recording question: %v", err)
		return
	}
	if err := historyStore.Append(ctx, sessionID, driven.Message{Role: "assistant", Content: answer, CreatedAt: now}); err != nil {
		logger.Warn("recording answer: %v", err)
	}
}
