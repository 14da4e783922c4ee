// Package tui provides a Bubble Tea terminal user interface for id3handler.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/id3handler/internal/config"
	"github.com/handiism/id3handler/internal/tagging"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const (
	maxLogs         = 10
	maxPreviewLines = 15
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StatePreview
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   tagging.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	preview   []tagging.Result
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Manager and its progress events
	manager *tagging.Manager
	events  chan tagging.ProgressEvent

	// Progress
	processedFiles int32
	totalFiles     int32
	done           int
	skipped        int
	failed         int

	// Options
	recursive bool
	playlist  bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/music/Artist - 2001 - Album"
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan tagging.ProgressEvent, 256),
		recursive: settings.Recursive,
		playlist:  settings.CreatePlaylist,
		verbose:   settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Event tagging.ProgressEvent
	}

	// ScanDoneMsg is sent when the files have been resolved and previewed.
	ScanDoneMsg struct {
		Manager *tagging.Manager
		Preview []tagging.Result
		Err     error
	}

	// ApplyDoneMsg is sent when all files have been processed.
	ApplyDoneMsg struct {
		Done, Skipped, Failed int
		Err                   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StatePreview:
				m.state = StateInput
				m.preview = nil
				m.manager = nil
				m.textInput.Focus()
				return m, nil
			case StateScanning, StateApplying:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			switch m.state {
			case StateInput:
				if path := strings.TrimSpace(m.textInput.Value()); path != "" {
					m.state = StateScanning
					m.textInput.Blur()
					return m, tea.Batch(m.scan(path), m.spinner.Tick)
				}
			case StatePreview:
				m.state = StateApplying
				return m, tea.Batch(m.apply(), m.tickProgress())
			}

		case "ctrl+r":
			if m.state == StateInput {
				m.recursive = !m.recursive
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another directory
				m.state = StateInput
				m.logs = nil
				m.preview = nil
				m.err = nil
				m.manager = nil
				m.processedFiles, m.totalFiles = 0, 0
				m.done, m.skipped, m.failed = 0, 0, 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level != tagging.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}

	case ScanDoneMsg:
		if m.state != StateScanning {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			m.preview = msg.Preview
			m.state = StatePreview
		}

	case ApplyDoneMsg:
		m.done, m.skipped, m.failed = msg.Done, msg.Skipped, msg.Failed
		if m.manager != nil {
			m.processedFiles, m.totalFiles = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateApplying {
			m.processedFiles, m.totalFiles = m.manager.GetProgress()

			var percent float64
			if m.totalFiles > 0 {
				percent = float64(m.processedFiles) / float64(m.totalFiles)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func waitForEvent(events <-chan tagging.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("ID3 Tag handler"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tag audio files from their path and file name"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StatePreview:
		b.WriteString(m.viewPreview())
	case StateApplying:
		b.WriteString(m.viewApplying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a file or directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Include subdirectories (ctrl+r)\n", checkbox(m.recursive)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+l)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Writing ID3v2.%d tags", m.settings.ToTagConfig().Version)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading tags..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

// previewMark classifies what an update would do to a file.
func previewMark(r tagging.Result) (string, lipgloss.Style) {
	switch {
	case r.Err != nil:
		return "✗", errorStyle
	case r.Proposed.IsIncomplete():
		return "!", warningStyle
	case r.Proposed.Equal(r.OnDisk):
		return "=", dimStyle
	}
	return "+", trackStyle
}

func (m Model) viewPreview() string {
	var b strings.Builder

	var write, same, bad int
	for _, r := range m.preview {
		switch mark, _ := previewMark(r); mark {
		case "+":
			write++
		case "=":
			same++
		default:
			bad++
		}
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d file(s): %d to update, %d unchanged, %d incomplete", len(m.preview), write, same, bad)))
	b.WriteString("\n\n")

	for i, r := range m.preview {
		if i == maxPreviewLines {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.preview)-maxPreviewLines)))
			b.WriteString("\n")
			break
		}
		mark, style := previewMark(r)
		b.WriteString(style.Render(fmt.Sprintf("  %s %s", mark, filepath.Base(r.Path))))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("      " + r.Proposed.String()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder

	// Progress bar
	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.processedFiles, m.totalFiles)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Tagging complete!\n\n"+
			"Updated: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d",
		m.done,
		m.skipped,
		m.failed,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case tagging.LevelError:
			style = errorStyle
			prefix = "✗"
		case tagging.LevelWarning:
			style = warningStyle
			prefix = "!"
		case tagging.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case tagging.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • ctrl+r: recursive • ctrl+p: playlist • ctrl+l: verbose • esc: quit"
	case StatePreview:
		return "enter: write tags • esc: back"
	case StateScanning, StateApplying:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: tag another • q: quit"
	}
	return ""
}

// scan resolves the input path and previews the proposed records.
func (m Model) scan(path string) tea.Cmd {
	settings := *m.settings
	settings.Recursive = m.recursive
	settings.CreatePlaylist = m.playlist
	ctx, events := m.ctx, m.events

	return func() tea.Msg {
		manager := tagging.NewManager(&settings, func(event tagging.ProgressEvent) {
			select {
			case events <- event:
			default:
				// Drop events rather than stall the workers.
			}
		})

		req := tagging.Request{Command: tagging.CommandUpdate, Paths: []string{path}}
		if err := manager.Initialize(ctx, req); err != nil {
			return ScanDoneMsg{Err: err}
		}

		preview, err := manager.Preview(ctx)
		return ScanDoneMsg{Manager: manager, Preview: preview, Err: err}
	}
}

// apply writes the tags in the background.
func (m Model) apply() tea.Cmd {
	manager, ctx := m.manager, m.ctx

	return func() tea.Msg {
		if manager == nil {
			return ApplyDoneMsg{Err: fmt.Errorf("no files scanned")}
		}

		err := manager.Run(ctx)
		done, skipped, failed := manager.Summary()
		return ApplyDoneMsg{Done: done, Skipped: skipped, Failed: failed, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
