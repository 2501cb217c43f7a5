package controller

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestJSONUI_DisplayReport(t *testing.T) {
	var buf bytes.Buffer

	ui := NewJSONUI(&buf)
	report := sampleReport()

	require.NoError(t, ui.DisplayReport(report))

	var got m.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	if diff := cmp.Diff(report, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONUI_EmptyReportHasFilesArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONUI(&buf).DisplayReport(m.Report{}))
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestJSONUI_DisplayFileResultIsOneLine(t *testing.T) {
	var buf bytes.Buffer

	ui := NewJSONUI(&buf)
	require.NoError(t, ui.DisplayFileResult(m.FileResult{Path: "a.rs"}))
	require.NoError(t, ui.DisplayFileResult(m.FileResult{Path: "b.rs", Diagnostics: []m.Diagnostic{todoDiagnostic()}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"diagnostics":[]`)
	assert.Contains(t, lines[1], `"rule":"todo"`)
}

func TestJSONUI_DisplayRules(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONUI(&buf).DisplayRules(nil))
	assert.Equal(t, "[]\n", buf.String())
}
