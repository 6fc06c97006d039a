package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/scoring"
)

const (
	summarySheet = "Summary"
	rankedSheet  = "Ranked Applicants"
)

// tierFill is the row background used for each match tier
var tierFill = map[models.Tier]string{
	models.TierHigh: "C6EFCE",
	models.TierMid:  "FFEB9C",
	models.TierLow:  "FFC7CE",
}

// Report is the content of one job's applicant report
type Report struct {
	Job        models.Job
	Applicants []models.ScoredApplicant // in display order
	Counts     models.StatusCounts
	Generated  time.Time
}

// ExportToExcel writes the report workbook to outputPath, adding .xlsx when missing
func ExportToExcel(report Report, outputPath string) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SaveAs(outputPath); err != nil {
		// Fall back to writing through a buffer
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return nil
}

// WriteExcel streams the report workbook to w
func WriteExcel(report Report, w io.Writer) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel workbook: %w", err)
	}
	return nil
}

func buildWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(rankedSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := createSummarySheet(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createRankedSheet(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create ranked applicants sheet: %w", err)
	}

	return f, nil
}

// createSummarySheet lists the job, status counts and tier distribution
func createSummarySheet(f *excelize.File, report Report) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 40); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	generated := report.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	row := 1
	heading := func(title string) error {
		if err := setRow(f, summarySheet, row, title); err != nil {
			return err
		}
		a, b := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)
		if err := f.SetCellStyle(summarySheet, a, b, headerStyle); err != nil {
			return err
		}
		row++
		return f.MergeCell(summarySheet, a, b)
	}
	line := func(label string, value any) error {
		err := setRow(f, summarySheet, row, label, value)
		row++
		return err
	}

	if err := heading("Applicant Report"); err != nil {
		return err
	}
	row++
	entries := []struct {
		label string
		value any
	}{
		{"Job Title:", report.Job.Title},
		{"Company:", report.Job.Company},
		{"Keywords:", strings.Join(report.Job.Keywords, ", ")},
		{"Generated:", generated.Format("2006-01-02 15:04:05")},
		{"Applicants Shown:", len(report.Applicants)},
		{"Applicants Total:", report.Counts.Total()},
	}
	for _, e := range entries {
		if err := line(e.label, e.value); err != nil {
			return err
		}
	}
	row++

	if err := heading("Pipeline Status"); err != nil {
		return err
	}
	for _, s := range models.Statuses() {
		if err := line(s.Label()+":", report.Counts.Get(s)); err != nil {
			return err
		}
	}
	row++

	if err := heading("Match Distribution"); err != nil {
		return err
	}
	tiers := map[models.Tier]int{}
	total := 0
	for _, a := range report.Applicants {
		tiers[models.TierFor(a.MatchScore)]++
		total += a.MatchScore
	}
	if err := line("High (70-100):", tiers[models.TierHigh]); err != nil {
		return err
	}
	if err := line("Mid (40-69):", tiers[models.TierMid]); err != nil {
		return err
	}
	if err := line("Low (<40):", tiers[models.TierLow]); err != nil {
		return err
	}
	if len(report.Applicants) > 0 {
		avg := float64(total) / float64(len(report.Applicants))
		if err := line("Average Score:", fmt.Sprintf("%.2f", avg)); err != nil {
			return err
		}
	}

	return nil
}

// createRankedSheet writes one row per applicant, coloured by match tier
func createRankedSheet(f *excelize.File, report Report) error {
	widths := map[string]float64{"A": 8, "B": 25, "C": 28, "D": 12, "E": 14, "F": 14, "G": 14, "H": 12, "I": 14}
	for col, w := range widths {
		if err := f.SetColWidth(rankedSheet, col, col, w); err != nil {
			return err
		}
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}

	tierStyles := make(map[models.Tier]int, len(tierFill))
	for tier, color := range tierFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: border,
		})
		if err != nil {
			return err
		}
		tierStyles[tier] = style
	}

	headers := []any{"Rank", "Applicant", "Email", "Match", "Skill Overlap", "Experience", "Skill Count", "Status", "Applied"}
	if err := setRow(f, rankedSheet, 1, headers...); err != nil {
		return err
	}
	if err := f.SetCellStyle(rankedSheet, "A1", "I1", headerStyle); err != nil {
		return err
	}

	for i, a := range report.Applicants {
		row := i + 2
		terms := scoring.Breakdown(report.Job, a.Applicant)
		values := []any{
			i + 1,
			a.Name,
			a.Email,
			a.MatchScore,
			fmt.Sprintf("%.2f", terms.SkillOverlap),
			fmt.Sprintf("%.2f", terms.Experience),
			fmt.Sprintf("%.2f", terms.SkillCount),
			a.Status.Label(),
			a.AppliedDate,
		}
		if err := setRow(f, rankedSheet, row, values...); err != nil {
			return err
		}
		style := tierStyles[models.TierFor(a.MatchScore)]
		if err := f.SetCellStyle(rankedSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), style); err != nil {
			return err
		}
	}

	if len(report.Applicants) > 0 {
		if err := f.AutoFilter(rankedSheet, fmt.Sprintf("A1:I%d", len(report.Applicants)+1), []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(rankedSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// setRow writes values into consecutive columns of one row, starting at A
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
