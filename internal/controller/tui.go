package controller

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/mouse-blink/splint/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	started bool
	done    chan struct{}
	err     error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, options ...tea.ProgramOption) *TUI {
	return &TUI{output: output, options: options}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)
	model := newReportModel(cfg.mode)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	return t.startWithModel(model)
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	opts := append([]tea.ProgramOption{tea.WithOutput(t.output), tea.WithAltScreen()}, t.options...)
	t.program = tea.NewProgram(model, opts...)
	t.done = make(chan struct{})
	t.started = true

	go func() {
		_, err := t.program.Run()

		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		close(t.done)
	}()

	return nil
}

// Close asks the program to quit and waits for it to exit.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user closes the program.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Done is closed once the program has exited.
func (t *TUI) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done
}

// Err returns the error the program exited with, if any.
func (t *TUI) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

// DisplayReport shows the report.
func (t *TUI) DisplayReport(report m.Report) error {
	t.send(reportMsg{report: report})
	return nil
}

// DisplayFileResult updates the entries of one file.
func (t *TUI) DisplayFileResult(result m.FileResult) error {
	t.send(fileResultMsg{result: result})
	return nil
}

// DisplayRules shows the rule set.
func (t *TUI) DisplayRules(rules []m.RuleSummary) error {
	t.send(rulesMsg{rules: rules})
	return nil
}

// send is a no-op until the program is started.
func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program, started := t.program, t.started
	t.mu.Unlock()

	if !started || program == nil {
		return
	}

	program.Send(msg)
}
