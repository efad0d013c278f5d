package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// chatSessionID scopes the conversation history of an interactive session.
const chatSessionID = "tui"

// turn is one question/answer exchange in the transcript.
type turn struct {
	question string
	answer   *domain.Answer
	err      error
}

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the chat UI styles.
	styles *styles.Styles

	// input is the question entry field.
	input textinput.Model

	// transcript scrolls the conversation history.
	transcript viewport.Model

	// spin animates while an answer is being generated.
	spin spinner.Model

	// turns is the conversation so far, oldest first.
	turns []turn

	// waiting is true while an answer is in flight.
	waiting bool

	// docCount is the number of indexed documents, -1 when unknown.
	docCount int

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the first WindowSizeMsg has arrived.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask a question (or 'summarize', 'translate:french')"
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		input:    input,
		spin:     spin,
		docCount: -1,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadDocumentCount())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.AskCompleted:
		a.waiting = false
		if len(a.turns) > 0 {
			last := &a.turns[len(a.turns)-1]
			last.answer = msg.Answer
			last.err = msg.Err
		}
		a.refreshTranscript()
		return a, nil

	case messages.DocumentCountLoaded:
		if msg.Err == nil {
			a.docCount = msg.Count
		}
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		a.refreshTranscript()
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "q":
		// Quit only when not typing a question.
		if a.input.Value() == "" {
			return a, tea.Quit
		}

	case "enter":
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.waiting {
			return a, nil
		}
		a.turns = append(a.turns, turn{question: question})
		a.waiting = true
		a.input.SetValue("")
		a.refreshTranscript()
		return a, tea.Batch(a.ask(question), a.spin.Tick)

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		a.transcript, cmd = a.transcript.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask returns a command that answers the question via the answer service.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Answer.Ask(a.ctx, chatSessionID, question)
		return messages.AskCompleted{Question: question, Answer: answer, Err: err}
	}
}

// loadDocumentCount returns a command that fetches the indexed document
// count for the header. No-op without a retrieval port.
func (a *App) loadDocumentCount() tea.Cmd {
	if a.ports.Retrieval == nil {
		return nil
	}
	return func() tea.Msg {
		docs, err := a.ports.Retrieval.ListDocuments(a.ctx)
		return messages.DocumentCountLoaded{Count: len(docs), Err: err}
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	inputHeight := 3 // bordered single line
	headerHeight := 1
	helpHeight := 1
	transcriptHeight := height - inputHeight - headerHeight - helpHeight
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	if !a.ready {
		a.transcript = viewport.New(width, transcriptHeight)
		a.ready = true
	} else {
		a.transcript.Width = width
		a.transcript.Height = transcriptHeight
	}

	a.input.Width = width - 6
	a.refreshTranscript()
}

func (a *App) refreshTranscript() {
	if !a.ready {
		return
	}
	a.transcript.SetContent(a.renderTurns())
	a.transcript.GotoBottom()
}

func (a *App) renderTurns() string {
	if len(a.turns) == 0 {
		return a.styles.Help.Render("Ask a question about your indexed documents.")
	}

	wrap := a.transcript.Width
	if wrap < 10 {
		wrap = 10
	}
	answerStyle := a.styles.Answer.Width(wrap)

	var b strings.Builder
	for i := range a.turns {
		t := &a.turns[i]
		b.WriteString(a.styles.Question.Render("> " + t.question))
		b.WriteString("\n")

		switch {
		case t.err != nil:
			b.WriteString(a.styles.Error.Render(t.err.Error()))
			b.WriteString("\n")
		case t.answer != nil:
			b.WriteString(answerStyle.Render(t.answer.Text))
			b.WriteString("\n")
			b.WriteString(a.renderSources(t.answer.Sources))
		case a.waiting && i == len(a.turns)-1:
			b.WriteString(a.spin.View())
			b.WriteString(a.styles.Help.Render(" thinking..."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderSources(sources []domain.RetrievalResult) string {
	if len(sources) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(sources))
	var b strings.Builder
	for i := range sources {
		doc := sources[i].Document
		if seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true

		title := doc.Title
		if title == "" {
			title = doc.ID
		}
		b.WriteString(a.styles.Source.Render("  - " + title))
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("Quaero Chat")
	if a.docCount >= 0 {
		header += a.styles.Help.Render(fmt.Sprintf("  %d documents indexed", a.docCount))
	}

	help := a.styles.Help.Render("enter: ask • ↑/↓: scroll • esc: quit")

	return header + "\n" +
		a.transcript.View() + "\n" +
		a.styles.InputField.Width(a.width-2).Render(a.input.View()) + "\n" +
		help
}
