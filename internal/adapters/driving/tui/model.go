// Package tui provides the interactive chat interface for docchat.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// AskFunc answers one question against the current state of the corpus.
// The chat model calls it from a background command so the UI stays
// responsive while the index builds or the model thinks.
type AskFunc func(ctx context.Context, question string) (*domain.Answer, error)

// Config holds the dependencies of the chat model.
type Config struct {
	// Ask produces an answer for a question.
	Ask AskFunc

	// CorpusChanged delivers a signal when the document folder changed
	// since the last answer. Optional.
	CorpusChanged <-chan struct{}

	// Title is shown in the header, usually the document folder.
	Title string

	// Greeting is shown as the initial status line. Optional.
	Greeting string
}

// entry is one question/answer exchange in the transcript.
type entry struct {
	question string
	answer   *domain.Answer
	err      error
}

// answerMsg carries a completed answer back to the model.
type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// corpusChangedMsg signals that the document folder changed.
type corpusChangedMsg struct{}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	cfg      Config
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries  []entry
	thinking bool
	stale    bool
	ready    bool
	status   string
}

// New creates a chat model.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	status := cfg.Greeting
	if status == "" {
		status = "Ready. Type a question to begin."
	}

	return Model{
		cfg:      cfg,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		status:   status,
	}
}

// Init starts the cursor blink and the corpus change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// waitForChange blocks on the corpus change channel.
func (m Model) waitForChange() tea.Cmd {
	ch := m.cfg.CorpusChanged
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return corpusChangedMsg{}
	}
}

// ask runs the answer chain in the background.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.cfg.Ask(context.Background(), question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 + 1 // header, input frame, input line, status
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-chatBoxStyle.GetHorizontalFrameSize())
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			question := strings.TrimSpace(m.input.Value())
			if question != "" {
				m.thinking = true
				m.status = "Thinking..."
				m.input.SetValue("")
				return m, tea.Batch(m.spinner.Tick, m.ask(question))
			}
		}

	case answerMsg:
		m.thinking = false
		m.entries = append(m.entries, entry{
			question: msg.question,
			answer:   msg.answer,
			err:      msg.err,
		})
		if msg.err != nil {
			m.status = "Answer failed. The transcript keeps the error."
		} else {
			m.status = fmt.Sprintf("Answered using %d source passages.", len(msg.answer.Sources))
			// A successful answer reflects the current folder state.
			m.stale = false
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case corpusChangedMsg:
		m.stale = true
		return m, m.waitForChange()

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("docchat") + " " + titleStyle.Render(m.cfg.Title)
	if m.stale {
		header += "  " + staleStyle.Render("(documents changed; next question rebuilds the index)")
	}

	transcript := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := m.status
	if m.thinking {
		status = m.spinner.View() + " " + status
	}

	return header + "\n" + transcript + "\n" + input + "\n" + statusStyle.Render(status)
}

// renderTranscript renders all exchanges so far.
func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		return "Ask anything about the documents in the folder."
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: ") + e.question + "\n\n")

		if e.err != nil {
			b.WriteString(errorStyle.Render("Error: " + e.err.Error()))
			continue
		}

		b.WriteString(e.answer.Text)
		if len(e.answer.Sources) > 0 {
			b.WriteString("\n")
			for _, src := range e.answer.Sources {
				b.WriteString("\n" + sourceStyle.Render(fmt.Sprintf("  [%s, page %d] %s", src.DocumentID, src.Page, src.Excerpt)))
			}
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
