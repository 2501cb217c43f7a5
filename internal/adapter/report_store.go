package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/splint/internal/model"
)

// ReportFileName is the file a report is saved to inside the reports directory.
const ReportFileName = "report.json"

// ErrNoReport is returned by LoadReport when nothing has been saved yet.
var ErrNoReport = errors.New("no saved report")

// ReportStore persists and retrieves lint reports.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) error
	LoadReport(dir m.Path) (m.Report, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation writing JSON files.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	target := filepath.Join(string(dir), ReportFileName)

	tmp, err := os.CreateTemp(string(dir), "report-*.json")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return os.Rename(tmp.Name(), target)
}

func (rs *reportStore) LoadReport(dir m.Path) (m.Report, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), ReportFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.Report{}, fmt.Errorf("%w in %s", ErrNoReport, dir)
		}

		return m.Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report m.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}

	return report, nil
}
