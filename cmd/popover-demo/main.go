package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/popover"
	"github.com/iw2rmb/popover/internal/candidates"
	"github.com/iw2rmb/popover/internal/config"
	"github.com/iw2rmb/popover/internal/logging"
	"github.com/iw2rmb/popover/popup"
	"github.com/iw2rmb/popover/textview"
)

var (
	configPath  = flag.String("config", "", "path to a YAML config file")
	latencyFlag = flag.Duration("latency", -1, "override the candidate lookup latency (e.g. 200ms)")
	versionFlag = flag.Bool("version", false, "print the version and exit")
)

const sampleText = `package main

// ctrl+space opens the completion popup for the word before the caret.
// Keep typing to narrow it, esc dismisses, ctrl+q quits.

func main() {
	pr
}`

type keyMap struct {
	Trigger key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Trigger: key.NewBinding(key.WithKeys("ctrl+@", "ctrl+space"), key.WithHelp("ctrl+space", "complete")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

type model struct {
	editor  textview.Model
	doc     *popup.Document
	popup   *popup.Container
	source  *candidates.Source
	handler popup.Handler[candidates.Candidate]
	keys    keyMap
	logger  *zap.Logger

	cancel context.CancelFunc
	status string
}

func newModel(cfg config.Config, logger *zap.Logger) model {
	words := cfg.Words
	if len(words) == 0 {
		words = candidates.DefaultWords()
	}
	editor := textview.New(textview.Config{
		Text:  sampleText,
		Style: textview.DefaultStyle(),
	})
	editor = editor.SetCursor(strings.Index(sampleText, "\tpr") + 3).SetOrigin(0, 1)

	return model{
		editor:  editor,
		doc:     popup.NewDocument(0, 0),
		source:  candidates.New(words, cfg.Latency, logger),
		handler: newHandler(cfg.Completion),
		keys:    defaultKeyMap(),
		logger:  logger,
		status:  "ctrl+space: complete | esc: dismiss | ctrl+q: quit",
	}
}

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

func newHandler(cfg config.Completion) popup.Handler[candidates.Candidate] {
	return popup.Handler[candidates.Candidate]{
		ItemView: popup.ItemViewFunc[candidates.Candidate](func(c candidates.Candidate, _ int) string {
			var sb strings.Builder
			for i, r := range c.Text {
				if slices.Contains(c.Matched, i) {
					sb.WriteString(matchStyle.Render(string(r)))
					continue
				}
				sb.WriteRune(r)
			}
			return " " + sb.String()
		}),
		ItemHeight:        cfg.ItemHeight,
		MaxVisible:        cfg.MaxVisible,
		Width:             cfg.Width,
		MeasuredPlacement: cfg.MeasuredPlacement,
		Style:             popup.DefaultStyle(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.doc.Update(msg)
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, m.refresh()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.dismiss()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Trigger):
			return m, m.show()
		case key.Matches(msg, m.keys.Dismiss):
			m.dismiss()
			return m, nil
		}
		m.editor, _ = m.editor.Update(msg)
		return m, m.refresh()
	case tea.MouseMsg:
		if cmd := m.doc.Update(msg); cmd != nil {
			return m, cmd
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	case popup.RenderedMsg:
		switch {
		case msg.Err == nil:
		case errors.Is(msg.Err, popup.ErrSuperseded), errors.Is(msg.Err, context.Canceled):
		default:
			m.status = "completion failed: " + msg.Err.Error()
		}
		return m, nil
	}
	return m, nil
}

// show renders the popup for the word before the caret, creating the
// container on first use.
func (m *model) show() tea.Cmd {
	start, word := m.editor.WordBefore(m.editor.Cursor())
	if m.popup == nil {
		m.popup = popup.Create(popup.WithLogger(m.logger))
		m.doc.Attach(m.popup)
	}
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	result := popup.Result[candidates.Candidate]{
		Pos:   start,
		Items: m.source.Items(ctx, word),
	}
	m.status = fmt.Sprintf("completing %q", word)
	return popup.Render(ctx, m.editor, m.handler, result, m.popup).Cmd()
}

// refresh re-renders an open popup after an edit, or dismisses it once the
// caret has left the word.
func (m *model) refresh() tea.Cmd {
	if m.popup == nil {
		return nil
	}
	if _, word := m.editor.WordBefore(m.editor.Cursor()); word == "" {
		m.dismiss()
		return nil
	}
	return m.show()
}

func (m *model) dismiss() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.popup != nil {
		popup.Destroy(m.popup)
		m.popup = nil
		m.status = "completion dismissed"
	}
}

func (m model) View() string {
	return m.doc.Compose(m.status + "\n" + m.editor.View())
}

func run() error {
	flag.Parse()
	if *versionFlag {
		fmt.Println("popover-demo", popover.Tag())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *latencyFlag >= 0 {
		cfg.Latency = *latencyFlag
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := tea.NewProgram(newModel(cfg, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
