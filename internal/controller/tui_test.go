package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd { return tea.Quit }
func (q quitModel) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return q, tea.Quit
}
func (q quitModel) View() string { return "" }

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf, tea.WithInput(nil))

	require.NoError(t, tui.startWithModel(quitModel{}))

	// send while running should go through program.Send
	tui.send(reportMsg{report: sampleReport()})

	waitDone := make(chan struct{})
	go func() {
		tui.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() timed out")
	}

	select {
	case <-tui.Done():
	default:
		t.Fatal("Done() not closed after exit")
	}

	closeDone := make(chan struct{})
	go func() {
		tui.Close()
		close(closeDone)
	}()

	select {
	case <-closeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() timed out")
	}

	assert.NoError(t, tui.Err())
}

func TestTUI_SendBeforeStartIsNoop(t *testing.T) {
	tui := NewTUI(&bytes.Buffer{})

	require.NoError(t, tui.DisplayReport(sampleReport()))
	require.NoError(t, tui.DisplayFileResult(m.FileResult{Path: "a.rs"}))
	require.NoError(t, tui.DisplayRules(nil))

	assert.Nil(t, tui.Done())
	tui.Wait()
	tui.Close()
}

func TestReportModel_ReportMsg(t *testing.T) {
	rm := newReportModel(ModeLint)
	assert.Equal(t, "Loading report…\n", rm.View())

	model, _ := rm.Update(reportMsg{report: sampleReport()})
	rm = model.(reportModel)

	require.True(t, rm.rendered)
	require.Len(t, rm.items.Items(), 2)

	first, ok := rm.items.Items()[0].(diagnosticItem)
	require.True(t, ok)
	assert.Equal(t, "todo", first.diagnostic.Rule)
	assert.Equal(t, "src/lib.rs:1:1", first.location())

	view := rm.View()
	assert.Contains(t, view, "Splint Report")
	assert.Contains(t, view, "Fails:")
	assert.Contains(t, view, "Unfinished code", "detail pane shows the selected diagnostic")
}

func TestReportModel_WatchModeMergesFileResults(t *testing.T) {
	rm := newReportModel(ModeWatch)
	assert.Equal(t, "Waiting for changes…\n", rm.View())

	model, _ := rm.Update(reportMsg{report: sampleReport()})
	rm = model.(reportModel)

	model, _ = rm.Update(fileResultMsg{result: m.FileResult{Path: "src/main.rs"}})
	rm = model.(reportModel)

	assert.Len(t, rm.items.Items(), 1)
	assert.Equal(t, 0, rm.report.Fails)
	assert.Equal(t, 1, rm.report.Warnings)
	assert.False(t, rm.report.AnyFailure)
}

func TestReportModel_RulesMsg(t *testing.T) {
	rm := newReportModel(ModeView)

	rules := []m.RuleSummary{{Name: "unwrap", Description: "Avoid unwrap", Severity: m.SeverityFail, Pattern: "Ident(unwrap)"}}

	model, _ := rm.Update(rulesMsg{rules: rules})
	rm = model.(reportModel)

	view := rm.View()
	assert.Contains(t, view, "Splint Rules")
	assert.Contains(t, view, "pattern: Ident(unwrap)")
}

func TestReportModel_EmptyReport(t *testing.T) {
	rm := newReportModel(ModeLint)

	model, _ := rm.Update(reportMsg{report: m.Report{}})
	rm = model.(reportModel)

	assert.Contains(t, rm.View(), "No diagnostics")
}

func TestReportModel_KeysAndResize(t *testing.T) {
	rm := newReportModel(ModeLint)

	model, _ := rm.Update(reportMsg{report: sampleReport()})
	rm = model.(reportModel)

	model, _ = rm.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	rm = model.(reportModel)
	assert.Equal(t, 100, rm.width)
	assert.Equal(t, 40, rm.height)

	model, _ = rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	rm = model.(reportModel)
	assert.Equal(t, 1, rm.items.Index())

	_, cmd := rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMergeFileResult_AppendsUnknownPath(t *testing.T) {
	report := mergeFileResult(m.Report{}, m.FileResult{Path: "new.rs", Diagnostics: []m.Diagnostic{unwrapDiagnostic()}})

	require.Len(t, report.Files, 1)
	assert.Equal(t, 1, report.Fails)
	assert.True(t, report.AnyFailure)
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "", truncateToWidth("hello", 0))
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "h…", truncateToWidth("hello", 2))
	assert.True(t, strings.HasSuffix(truncateToWidth("名前名前", 5), "…"))
}
