// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     tui
// Description: Bubbletea front end of the developer console
// Author:      Mike Stoffels
// Created:     2025-12-08
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/devconsole/internal/clock"
	"github.com/msto63/devconsole/internal/console"
	"github.com/msto63/devconsole/pkg/core/config"
	"github.com/msto63/devconsole/pkg/core/logging"
	"github.com/msto63/devconsole/pkg/core/version"
)

const (
	// RefreshInterval is how often watch slots and forwarded log entries update
	RefreshInterval = 200 * time.Millisecond

	defaultMaxLogLines = 1000
	watchPanelWidth    = 36
)

// Options configure the console view
type Options struct {
	Console  *console.Console
	Settings *config.ConsoleConfig

	// Clock is paused while the console is open if Settings.PauseTime is set
	Clock *clock.Clock

	// Tap delivers host log entries shown when Settings.ShowLog is set
	Tap *logging.Tap

	Logger *logging.Logger
}

// hostState is shared by all copies of the model. The console hooks write
// to it during dispatch.
type hostState struct {
	clearRequested bool
	exitRequested  bool
	clockPaused    bool
}

// tickMsg triggers a refresh of watches and forwarded logs
type tickMsg time.Time

// SettingsMsg replaces the console settings, e.g. after the config file changed
type SettingsMsg config.ConsoleConfig

// Model is the Bubbletea model of the console view
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	viewport viewport.Model
	input    textinput.Model

	// Console
	console  *console.Console
	settings *config.ConsoleConfig
	clock    *clock.Clock
	tap      *logging.Tap
	logger   *logging.Logger
	state    *hostState

	lines      []string
	watchLines []string
	browse     int // history index shown in the input, -1 when not browsing
}

// New creates the console view. The startup script runs here, so its output
// is the first thing shown.
func New(opts Options) Model {
	if opts.Settings == nil {
		opts.Settings = &config.Default().Console
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Console == nil {
		opts.Console = console.New(console.Options{Logger: opts.Logger, Settings: opts.Settings})
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a command, try help or registry"
	ti.CharLimit = 1024
	ti.Focus()

	m := Model{
		input:    ti,
		console:  opts.Console,
		settings: opts.Settings,
		clock:    opts.Clock,
		tap:      opts.Tap,
		logger:   opts.Logger.WithField("component", "tui"),
		state:    &hostState{},
		browse:   -1,
	}

	st := m.state
	m.console.OnClear(func() { st.clearRequested = true })
	m.console.OnExit(func() { st.exitRequested = true })

	f := m.console.Formatter()
	for _, d := range m.console.Diagnostics() {
		m.appendLines(f.Error(d))
	}

	m.runStartupScript()
	m.applySettings()
	m.watchLines = m.console.Watches().Render()

	m.logger.Debug("Console view created", logging.Fields{
		"pauseTime": m.settings.PauseTime,
		"showLog":   m.settings.ShowLog,
	})
	return m
}

func (m *Model) runStartupScript() {
	path := m.settings.StartupScript
	if path == "" {
		return
	}

	outputs, err := m.console.RunScriptFile(path)
	if err != nil {
		m.logger.WarnWithErr("Startup script failed", err, logging.Fields{"file": path})
		if m.settings.WarnAboutInitScript {
			m.appendLines(m.console.Formatter().Warning(fmt.Sprintf("Startup script %s was not run: %v", path, err)))
		}
		return
	}
	for _, out := range outputs {
		m.appendOutput(out)
	}
}

// applySettings syncs the console with settings changed by commands
func (m *Model) applySettings() {
	s := m.settings
	m.console.ApplySettings()

	if m.clock != nil {
		switch {
		case s.PauseTime && !m.state.clockPaused:
			m.state.clockPaused = m.clock.Pause()
		case !s.PauseTime && m.state.clockPaused:
			m.clock.Resume()
			m.state.clockPaused = false
		}
	}

	m.trimLines()
}

// release undoes what the open console changed on the host
func (m Model) release() {
	if m.clock != nil && m.state.clockPaused {
		m.clock.Resume()
		m.state.clockPaused = false
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		m.refresh()
		cmds = append(cmds, tick())

	case SettingsMsg:
		*m.settings = config.ConsoleConfig(msg)
		m.applySettings()
		m.updateViewportContent()
		m.logger.Info("Console settings reloaded")
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.release()
		return m, tea.Quit

	case tea.KeyEnter:
		m.submit()
		if m.state.exitRequested {
			m.release()
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyUp:
		m.browseHistory(1)
		return m, nil

	case tea.KeyDown:
		m.browseHistory(-1)
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	// Ctrl+W and the other line editing keys are handled by textinput
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the input line
func (m *Model) submit() {
	line := m.input.Value()
	m.input.Reset()
	m.browse = -1

	if strings.TrimSpace(line) == "" {
		return
	}

	m.appendLines(m.console.Formatter().Color("> ", colorSecondary) + line)
	m.appendOutput(m.console.ProcessLine(line))

	if m.state.clearRequested {
		m.state.clearRequested = false
		m.lines = nil
		m.updateViewportContent()
	}

	if buffered, ok := m.console.TakeBufferedLine(); ok {
		m.input.SetValue(buffered)
		m.input.CursorEnd()
	}

	m.applySettings()
	m.watchLines = m.console.Watches().Render()
}

// browseHistory moves through the history; positive steps go back in time
func (m *Model) browseHistory(step int) {
	h := m.console.History()
	next := m.browse + step

	switch {
	case next < 0:
		m.browse = -1
		m.input.SetValue("")
		return
	case next >= h.Len():
		return
	}

	line, _ := h.At(next)
	m.browse = next
	m.input.SetValue(line)
	m.input.CursorEnd()
}

// refresh re-evaluates the watches and forwards buffered log entries
func (m *Model) refresh() {
	m.watchLines = m.console.Watches().Render()

	if m.tap == nil {
		return
	}
	entries := m.tap.Drain()
	if !m.settings.ShowLog {
		return
	}

	f := m.console.Formatter()
	for _, e := range entries {
		text := e.Message
		if e.Error != nil {
			text += ": " + e.Error.Error()
		}
		switch {
		case e.Level >= logging.LevelError:
			m.appendLines(f.Error(text))
		case e.Level == logging.LevelWarn:
			m.appendLines(f.Warning(text))
		default:
			m.appendLines(f.Log(text))
		}
	}
}

func (m *Model) appendOutput(out string) {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return
	}
	m.appendLines(strings.Split(out, "\n")...)
}

func (m *Model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.trimLines()
	m.updateViewportContent()
}

func (m *Model) trimLines() {
	max := m.settings.MaxLogLines
	if max <= 0 {
		max = defaultMaxLogLines
	}
	if len(m.lines) > max {
		m.lines = append([]string(nil), m.lines[len(m.lines)-max:]...)
	}
}

func (m *Model) resize() {
	headerHeight := 1
	footerHeight := 4 // input box + help bar
	vpHeight := m.height - headerHeight - footerHeight - 2
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width - watchPanelWidth - 4
	if vpWidth < 10 {
		vpWidth = 10
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - 8
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Lines returns the lines currently shown in the log view
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading console..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	logPanel := LogPanelStyle.Width(m.viewport.Width + 2).Render(m.viewport.View())
	watchPanel := WatchPanelStyle.Width(watchPanelWidth - 4).Height(m.viewport.Height).Render(m.renderWatches())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, logPanel, watchPanel))
	b.WriteString("\n")

	b.WriteString(FocusedInputStyle.Width(m.width - 4).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	header := TitleStyle.Render("Developer Console") + " " + SubtitleStyle.Render("v"+version.Console)
	if m.state.clockPaused {
		header += "  " + PausedStyle.Render("time paused")
	}
	return header
}

func (m Model) renderWatches() string {
	if len(m.watchLines) == 0 {
		return SubtitleStyle.Render("no watches, see help debug")
	}
	return strings.Join(m.watchLines, "\n")
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "Run"),
		RenderKeyHint("Up/Down", "History"),
		RenderKeyHint("PgUp/PgDn", "Scroll"),
		RenderKeyHint("Ctrl+W", "Delete word"),
		RenderKeyHint("Esc", "Close"),
	}
	return strings.Join(items, "  ")
}

// Run opens the console view and blocks until it is closed or ctx is
// cancelled. If configPath is set, changes to the file are applied live.
func Run(ctx context.Context, opts Options, configPath string) error {
	m := New(opts)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.settings.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)

	if configPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(watchCtx, configPath, m.logger, func(cfg *config.Config) {
				p.Send(SettingsMsg(cfg.Console))
			})
			if err != nil {
				m.logger.WarnWithErr("Config watch stopped", err)
			}
		}()
	}

	_, err := p.Run()
	m.release()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
