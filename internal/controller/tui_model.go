package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/splint/internal/model"
)

const levelWidth = 8

// Simple delegate for diagnostic and rule list items.
type reportDelegate struct{}

func (d reportDelegate) Height() int  { return 1 }
func (d reportDelegate) Spacing() int { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reportDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	var (
		severity m.Severity
		label    string
	)

	switch it := item.(type) {
	case diagnosticItem:
		severity = it.diagnostic.Severity
		label = fmt.Sprintf("%s  %s", it.diagnostic.Rule, it.location())
	case ruleItem:
		severity = it.rule.Severity
		label = fmt.Sprintf("%s  %s", it.rule.Name, it.rule.Pattern)
	default:
		return
	}

	levelStyle := lipgloss.NewStyle().Bold(true).Width(levelWidth)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	if severity == m.SeverityFail {
		levelStyle = levelStyle.Foreground(lipgloss.Color("9"))
	} else {
		levelStyle = levelStyle.Foreground(lipgloss.Color("11"))
	}

	if index == lm.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		levelStyle = levelStyle.Inherit(selected).Background(lipgloss.Color("6"))
		labelStyle = selected
	}

	width := lm.Width() - levelWidth - 2

	line := fmt.Sprintf("%s  %s",
		levelStyle.Render(severity.String()),
		labelStyle.Render(truncateToWidth(label, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// reportModel browses the diagnostics of a report, or the rules of a rule
// set, with a detail pane for the selected entry.
type reportModel struct {
	mode     StartMode
	width    int
	height   int
	items    list.Model
	report   m.Report
	rules    []m.RuleSummary
	rendered bool
}

func newReportModel(mode StartMode) reportModel {
	items := list.New([]list.Item{}, reportDelegate{}, 80, 20)
	items.SetShowPagination(false)
	items.SetShowFilter(true)
	items.SetShowHelp(false)
	items.SetShowTitle(false)
	items.SetShowStatusBar(false)
	items.FilterInput.Placeholder = "Filter by rule or path…"

	return reportModel{
		mode:   mode,
		width:  80,
		height: 24,
		items:  items,
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.items.SetWidth(rm.width)

	case tea.KeyMsg:
		if rm.items.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return rm, tea.Quit
			}
		}

		rm.items, cmd = rm.items.Update(msg)

		return rm, cmd

	case reportMsg:
		rm.report = msg.report
		rm = rm.refreshDiagnostics()

	case fileResultMsg:
		rm.report = mergeFileResult(rm.report, msg.result)
		rm = rm.refreshDiagnostics()

	case rulesMsg:
		rm.rules = msg.rules
		rm = rm.refreshRules()
	}

	return rm, cmd
}

func (rm reportModel) refreshDiagnostics() reportModel {
	diags := rm.report.Diagnostics()
	items := make([]list.Item, 0, len(diags))

	for _, d := range diags {
		items = append(items, diagnosticItem{diagnostic: d})
	}

	rm.items.SetItems(items)
	rm.rendered = true

	return rm
}

func (rm reportModel) refreshRules() reportModel {
	items := make([]list.Item, 0, len(rm.rules))
	for _, r := range rm.rules {
		items = append(items, ruleItem{rule: r})
	}

	rm.items.SetItems(items)
	rm.rendered = true

	return rm
}

// mergeFileResult replaces the entry for result.Path and recounts totals.
func mergeFileResult(report m.Report, result m.FileResult) m.Report {
	files := make([]m.FileResult, 0, len(report.Files)+1)
	replaced := false

	for _, f := range report.Files {
		if f.Path == result.Path {
			files = append(files, result)
			replaced = true

			continue
		}

		files = append(files, f)
	}

	if !replaced {
		files = append(files, result)
	}

	report.Files = files
	report.Fails, report.Warnings = 0, 0

	for _, f := range files {
		fails, warnings := countSeverities(f.Diagnostics)
		report.Fails += fails
		report.Warnings += warnings
	}

	report.AnyFailure = report.Fails > 0

	return report
}

func (rm reportModel) View() string {
	if !rm.rendered {
		if rm.mode == ModeWatch {
			return "Waiting for changes…\n"
		}

		return "Loading report…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	var title, summary string

	if rm.rules != nil {
		title = titleStyle.Render("Splint Rules")
		summary = summaryStyle.Render(fmt.Sprintf("Rules: %s", accentStyle.Render(fmt.Sprintf("%d", len(rm.rules)))))
	} else {
		title = titleStyle.Render("Splint Report")
		summary = summaryStyle.Render(fmt.Sprintf(
			"Fails: %s   Warnings: %s   Files: %s",
			failStyle.Render(fmt.Sprintf("%d", rm.report.Fails)),
			warnStyle.Render(fmt.Sprintf("%d", rm.report.Warnings)),
			accentStyle.Render(fmt.Sprintf("%d", len(rm.report.Files))),
		))
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(rm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		rm.renderList(),
		rm.renderDetail(),
		footer,
	)
}

func (rm reportModel) renderList() string {
	// Title (2), summary (2), footer (1), borders (4) and the detail pane.
	listHeight := (rm.height - 9) / 2
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := rm.width - 6
	if listWidth < 10 {
		listWidth = 10
	}

	rm.items.SetHeight(listHeight)
	rm.items.SetWidth(listWidth)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	if len(rm.items.Items()) == 0 {
		return box.Render(lipgloss.NewStyle().Width(listWidth).Render("No diagnostics"))
	}

	return box.Render(rm.items.View())
}

func (rm reportModel) renderDetail() string {
	var b strings.Builder

	switch it := rm.items.SelectedItem().(type) {
	case diagnosticItem:
		renderDiagnostic(&b, it.diagnostic, newPalette(false))
	case ruleItem:
		fmt.Fprintf(&b, "%s (%s)\n%s\npattern: %s\nrange: %d..%d\n",
			it.rule.Name, it.rule.Severity, it.rule.Description, it.rule.Pattern, it.rule.Range[0], it.rule.Range[1])
	default:
		return ""
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		Margin(0, 1).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}
