package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func sampleStoredReport() m.Report {
	return m.Report{
		Files: []m.FileResult{
			{
				Path: "src/lib.rs",
				Hash: "abc123",
				Diagnostics: []m.Diagnostic{{
					Rule:     "unwrap",
					Severity: m.SeverityFail,
					Message:  "Avoid unwrap",
					Help:     "use expect",
					Span: m.Span{
						Start: m.Position{Line: 3, Column: 14, Offset: 40},
						End:   m.Position{Line: 3, Column: 23, Offset: 49},
					},
					File: "src/lib.rs",
					Line: "    let x = y.unwrap();",
				}},
			},
			{Path: "src/broken.rs", Diagnostics: []m.Diagnostic{}, ParseError: "syntax error at 1:4"},
		},
		AnyFailure: true,
		Fails:      1,
		Duration:   12 * time.Millisecond,
	}
}

func TestReportStore_SaveThenLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "reports")
	rs := NewReportStore()
	report := sampleStoredReport()

	require.NoError(t, rs.SaveReport(m.Path(dir), report))

	info, err := os.Stat(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	loaded, err := rs.LoadReport(m.Path(dir))
	require.NoError(t, err)

	if diff := cmp.Diff(report, loaded); diff != "" {
		t.Errorf("LoadReport() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportStore_SaveOverwritesPreviousReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := NewReportStore()

	require.NoError(t, rs.SaveReport(m.Path(dir), sampleStoredReport()))
	require.NoError(t, rs.SaveReport(m.Path(dir), m.Report{Files: []m.FileResult{}}))

	loaded, err := rs.LoadReport(m.Path(dir))
	require.NoError(t, err)
	assert.Empty(t, loaded.Files)
	assert.False(t, loaded.AnyFailure)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestReportStore_LoadMissingReport(t *testing.T) {
	t.Parallel()

	_, err := NewReportStore().LoadReport(m.Path(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReport))
}

func TestReportStore_LoadCorruptReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ReportFileName), "{not json")

	_, err := NewReportStore().LoadReport(m.Path(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode report")
}

func TestReportStore_SaveIntoFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "plain")
	writeTestFile(t, file, "x")

	err := NewReportStore().SaveReport(m.Path(file), sampleStoredReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create reports directory")
}
