package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/wmd/log"
)

const (
	evalPrompt = "wmd> "
	ctrlPrompt = "   : "

	defaultWidth = 80
	maxInput     = 1024
)

// inputMode selects what the input line means: statements to evaluate or a
// control command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func (mode inputMode) other() inputMode {
	if mode == modeEval {
		return modeCtrl
	}

	return modeEval
}

// palette holds the full-screen REPL styles.
type palette struct {
	evalPrompt, ctrlPrompt lipgloss.Style
	input, result, err     lipgloss.Style
	hint, suggestion       lipgloss.Style
	keyword, selected      lipgloss.Style
}

var theme = palette{
	evalPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	ctrlPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	input:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	result:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	err:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	keyword:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("4")),
}

func (p palette) prompt(mode inputMode) string {
	if mode == modeCtrl {
		return p.ctrlPrompt.Render(ctrlPrompt)
	}

	return p.evalPrompt.Render(evalPrompt)
}

// echo renders a submitted line after the prompt it was entered at.
func (p palette) echo(mode inputMode, line string) string {
	return p.prompt(mode) + p.input.Render(line)
}

// outputs renders evaluation output, one styled line per value or
// diagnostic.
func (p palette) outputs(outs []output) string {
	lines := make([]string, len(outs))

	for i, o := range outs {
		style := p.result
		if o.kind == outputError {
			style = p.err
		}

		lines[i] = style.Render(o.text)
	}

	return strings.Join(lines, "\n")
}

// field is the saved content of an input line.
type field struct {
	text   string
	cursor int
}

// completion is the state of the completion bar.
type completion struct {
	matches    fuzzy.Matches
	start, end int // byte bounds of the word being completed
	selected   int // index into matches, or -1

	// cycling is set while Tab moves through matches; origin is the input
	// to restore if cycling is cancelled.
	cycling bool
	origin  field
}

// detour remembers where Alt-Up/Alt-Down command history browsing began.
type detour struct {
	active bool
	mode   inputMode
	origin field
}

// model is the Bubble Tea model of the full-screen REPL.
type model struct {
	ctx     context.Context
	logger  log.Logger
	session *Session
	history *History
	input   textinput.Model

	mode  inputMode
	saved [2]field // input of each mode while the other is shown

	comp   completion
	detour detour

	histPos int    // index of the history entry shown, or history.Len()
	buffer  string // last program written with edit
	width   int
	done    bool
}

// Run starts the full-screen REPL on the terminal, evaluating input in s.
// History is persisted in cacheDir.
func Run(ctx context.Context, s *Session, cacheDir string, logger log.Logger) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("bindings", len(s.Names())),
	)

	m := newModel(ctx, s, loadHistory(ctx, cacheDir, logger), logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

// loadHistory returns the history stored in cacheDir. A history file that
// cannot be read is logged and replaced by an empty history.
func loadHistory(ctx context.Context, cacheDir string, logger log.Logger) *History {
	h := NewHistory(filepath.Join(cacheDir, baseHistory))

	if err := h.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", h.path),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl history loaded", slog.Int("entries", h.Len()))

	return h
}

func newModel(ctx context.Context, s *Session, h *History, logger log.Logger) model {
	in := textinput.New()
	in.Prompt = theme.prompt(modeEval)
	in.CharLimit = maxInput
	in.Width = defaultWidth
	in.Focus()

	return model{
		ctx:     ctx,
		logger:  logger,
		session: s,
		history: h,
		input:   in,
		mode:    modeEval,
		comp:    completion{selected: -1},
		histPos: h.Len(),
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editResult:
		return m.edited(msg)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}

	return m.input.View() + "\n" + m.status() + "\n"
}

// status returns the line shown below the input: the history position, a
// hint, or completion candidates.
func (m model) status() string {
	switch {
	case m.histPos < m.history.Len():
		pos := lipgloss.NewStyle().Bold(true).Render(fmt.Sprint(m.histPos + 1))

		return theme.hint.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		if m.mode == modeCtrl {
			return theme.hint.Render("Type: " + strings.Join(ctrlCommands, ", ") +
				" (press Esc to return)")
		}

		return theme.hint.Render("Type a statement or press Esc for commands")

	default:
		return renderCandidateBar(m.comp.matches, m.comp.selected, m.comp.cycling, m.width)
	}
}

// submit runs the input line in the current mode.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.saved = [2]field{}
	m.input.SetValue("")
	m.comp = completion{selected: -1}

	if err := m.history.Add(line, m.mode); err != nil {
		m.logger.DebugContext(m.ctx, "repl history write", slog.Any("error", err))
	}

	m.histPos = m.history.Len()

	echo := tea.Println(theme.echo(m.mode, line))

	if m.mode == modeCtrl {
		return m.command(line, echo)
	}

	m.logger.TraceContext(m.ctx, "repl eval", slog.String("input", line))

	if outs := m.session.Eval(m.ctx, line); len(outs) > 0 {
		return m, tea.Sequence(echo, tea.Println(theme.outputs(outs)))
	}

	return m, echo
}

// command runs a control command, printing echo first.
func (m model) command(line string, echo tea.Cmd) (model, tea.Cmd) {
	kind, name, args := parseCommand(line)

	m.logger.TraceContext(m.ctx, "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch kind {
	case cmdQuit:
		m.done = true

		return m, tea.Sequence(echo, tea.Quit)

	case cmdHelp:
		return m, tea.Sequence(echo, tea.Println(helpMessage("", true)))

	case cmdVars:
		return m, tea.Sequence(echo, tea.Println(m.vars()))

	case cmdClear:
		m.session.Reset()

		return m, tea.ClearScreen

	case cmdEdit:
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(theme.err.Render("Unknown command: " + name + " (try 'help')"))
	}
}

func (m model) vars() string {
	vars := m.session.Vars()
	if len(vars) == 0 {
		return theme.hint.Render("  (no bindings)")
	}

	var b strings.Builder

	for _, v := range vars {
		name, value, _ := strings.Cut(v, " = ")
		b.WriteString("  " + name + " " + theme.hint.Render("= "+value) + "\n")
	}

	return b.String()
}

// setMode shows the input of mode, saving that of the current mode.
func (m model) setMode(mode inputMode) model {
	m.saved[m.mode] = field{text: m.input.Value(), cursor: m.input.Position()}
	m.mode = mode

	m.input.Prompt = theme.prompt(mode)
	m.setField(m.saved[mode])
	m.refresh(false)

	return m
}

func (m *model) setField(f field) {
	m.input.SetValue(f.text)
	m.input.SetCursor(f.cursor)
}
